package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veggiecommerce/veggie-app/models"
	"github.com/veggiecommerce/veggie-app/services"
	"github.com/veggiecommerce/veggie-app/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// CreateOrder -> place an order for the authenticated user
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.CreateOrder(userID, req)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetMyOrders -> list the authenticated user's orders, newest first
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	orders, err := oc.Service.GetOrdersByUser(userID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order; other users' orders read as not
// found so order ids cannot be probed
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.GetOrderByID(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if order == nil || order.UserID != userID {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CancelOrder -> Pending/Confirmed only; restores stock
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !oc.ownsOrder(c, userID, orderID) {
		return
	}

	order, err := oc.Service.CancelOrder(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// DeleteOrder -> Pending/Confirmed only; restores stock and removes the
// order with its items
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !oc.ownsOrder(c, userID, orderID) {
		return
	}

	deleted, err := oc.Service.DeleteOrder(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{
		"order_id": orderID,
		"deleted":  deleted,
	})
}

// UpdateOrderStatus -> set any known status on the order
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user token"))
		return
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !oc.ownsOrder(c, userID, orderID) {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateOrderStatus(orderID, models.OrderStatus(body.Status))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// ownsOrder guards the mutating endpoints: other users' orders read as
// not found, same as the detail path. Responds and returns false when
// the caller may not touch the order.
func (oc *OrderController) ownsOrder(c *gin.Context, userID, orderID uint) bool {
	order, err := oc.Service.GetOrderByID(orderID)
	if err != nil {
		respondOrderError(c, err)
		return false
	}
	if order == nil || order.UserID != userID {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return false
	}
	return true
}

func orderIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid order id")
	}
	return uint(id), nil
}

// respondOrderError translates the order service's typed errors into
// transport status codes.
func respondOrderError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &notFoundErr):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &conflictErr):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Errorf("Order operation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
