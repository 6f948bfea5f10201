package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/models"
	"github.com/veggiecommerce/veggie-app/utils"
)

const (
	maxShippingAddressLen = 1000
	maxPaymentMethodLen   = 100
	maxNotesLen           = 1000
)

// OrderService owns every mutation of orders and of the stock fields on
// vegetables. Each operation runs in its own transaction; a failure at
// any step rolls the whole operation back.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type CreateOrderItemRequest struct {
	VegetableID uint     `json:"vegetable_id"`
	Quantity    int      `json:"quantity"`
	Price       *float64 `json:"price,omitempty"` // optional; catalog prices are authoritative
}

type CreateOrderRequest struct {
	ShippingAddress string                   `json:"shipping_address"`
	PaymentMethod   string                   `json:"payment_method"`
	Notes           string                   `json:"notes"`
	Items           []CreateOrderItemRequest `json:"items"`
}

// OrderItemDetail is an order item annotated with the vegetable's
// display name and image. The annotation is a read-time join, the
// stored row only carries the vegetable id.
type OrderItemDetail struct {
	ID                uint    `json:"id"`
	VegetableID       uint    `json:"vegetable_id"`
	VegetableName     string  `json:"vegetable_name"`
	VegetableImageUrl string  `json:"vegetable_image_url"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	Subtotal          float64 `json:"subtotal"`
}

type OrderDetail struct {
	ID              uint               `json:"id"`
	UserID          uint               `json:"user_id"`
	OrderDate       time.Time          `json:"order_date"`
	Status          models.OrderStatus `json:"status"`
	TotalAmount     float64            `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	Notes           string             `json:"notes,omitempty"`
	Items           []OrderItemDetail  `json:"items"`
}

// CreateOrder validates the request against the catalog, computes the
// total from current catalog prices, persists the order with its items
// and decrements stock, all in one transaction.
func (s *OrderService) CreateOrder(userID uint, req CreateOrderRequest) (*OrderDetail, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, NewTransactionError(tx.Error, "failed to begin transaction")
	}

	detail, err := s.createOrderTx(tx, userID, req)
	if err != nil {
		s.rollback(tx, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		commitErr := NewTransactionError(err, "failed to commit order")
		s.rollback(tx, commitErr)
		return nil, commitErr
	}

	utils.InfoLogger.Printf("Order %d created for user %d (total %.2f)", detail.ID, userID, detail.TotalAmount)
	return detail, nil
}

func (s *OrderService) createOrderTx(tx *gorm.DB, userID uint, req CreateOrderRequest) (*OrderDetail, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user with ID %d not found", userID)
		}
		return nil, NewTransactionError(err, "failed to load user %d", userID)
	}

	if len(req.Items) == 0 {
		return nil, NewValidationError("order must contain at least one item")
	}

	shippingAddress := strings.TrimSpace(req.ShippingAddress)
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	notes := strings.TrimSpace(req.Notes)

	if shippingAddress == "" {
		return nil, NewValidationError("shipping address is required")
	}
	if len(shippingAddress) > maxShippingAddressLen {
		return nil, NewValidationError("shipping address is too long (maximum %d characters)", maxShippingAddressLen)
	}
	if paymentMethod == "" {
		return nil, NewValidationError("payment method is required")
	}
	if len(paymentMethod) > maxPaymentMethodLen {
		return nil, NewValidationError("payment method is too long (maximum %d characters)", maxPaymentMethodLen)
	}
	if len(notes) > maxNotesLen {
		return nil, NewValidationError("notes are too long (maximum %d characters)", maxNotesLen)
	}

	for _, item := range req.Items {
		if item.VegetableID == 0 {
			return nil, NewValidationError("invalid vegetable ID: %d", item.VegetableID)
		}
		if item.Quantity <= 0 {
			return nil, NewValidationError("quantity must be greater than 0 for vegetable %d", item.VegetableID)
		}
		if item.Price != nil && *item.Price <= 0 {
			return nil, NewValidationError("price must be greater than 0 for vegetable %d", item.VegetableID)
		}
	}

	// Load every requested vegetable in one query and compare id sets,
	// so a request with several unknown ids reports all of them at once.
	vegetableIDs := make([]uint, 0, len(req.Items))
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.VegetableID] {
			seen[item.VegetableID] = true
			vegetableIDs = append(vegetableIDs, item.VegetableID)
		}
	}

	var vegetables []models.Vegetable
	if err := tx.Where("id IN ?", vegetableIDs).Find(&vegetables).Error; err != nil {
		return nil, NewTransactionError(err, "failed to load vegetables")
	}

	vegByID := make(map[uint]*models.Vegetable, len(vegetables))
	for i := range vegetables {
		vegByID[vegetables[i].ID] = &vegetables[i]
	}

	if len(vegetables) != len(vegetableIDs) {
		var missing []string
		for _, id := range vegetableIDs {
			if _, ok := vegByID[id]; !ok {
				missing = append(missing, strconv.FormatUint(uint64(id), 10))
			}
		}
		return nil, NewNotFoundError("vegetables not found: %s", strings.Join(missing, ", "))
	}

	for _, item := range req.Items {
		veg := vegByID[item.VegetableID]
		if !veg.InStock {
			return nil, NewConflictError("vegetable '%s' is out of stock", veg.Name)
		}
		if veg.StockQuantity < item.Quantity {
			return nil, NewConflictError("insufficient stock for '%s'. Available: %d, Requested: %d",
				veg.Name, veg.StockQuantity, item.Quantity)
		}
	}

	var totalAmount float64
	for _, item := range req.Items {
		totalAmount += float64(item.Quantity) * vegByID[item.VegetableID].Price
	}
	totalAmount = roundMoney(totalAmount)

	order := models.Order{
		UserID:          userID,
		OrderDate:       time.Now().UTC(),
		Status:          models.OrderStatusPending,
		TotalAmount:     totalAmount,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, NewTransactionError(err, "failed to save order")
	}

	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		veg := vegByID[item.VegetableID]
		orderItems = append(orderItems, models.OrderItem{
			OrderID:     order.ID,
			VegetableID: item.VegetableID,
			Quantity:    item.Quantity,
			Price:       veg.Price,
			Subtotal:    roundMoney(float64(item.Quantity) * veg.Price),
		})
	}
	if err := tx.Create(&orderItems).Error; err != nil {
		return nil, NewTransactionError(err, "failed to save order items")
	}

	// Guarded decrement: the stock_quantity >= quantity predicate makes
	// the availability check and the decrement one atomic statement, so
	// concurrent orders racing on the same vegetable can never drive the
	// committed stock below zero. in_stock is recomputed in the same
	// statement to keep the in_stock == (stock_quantity > 0) invariant.
	for _, item := range req.Items {
		veg := vegByID[item.VegetableID]
		res := tx.Model(&models.Vegetable{}).
			Where("id = ? AND stock_quantity >= ?", item.VegetableID, item.Quantity).
			Updates(map[string]interface{}{
				"stock_quantity": gorm.Expr("stock_quantity - ?", item.Quantity),
				"in_stock":       gorm.Expr("stock_quantity - ? > 0", item.Quantity),
			})
		if res.Error != nil {
			return nil, NewTransactionError(res.Error, "failed to update stock for vegetable %d", item.VegetableID)
		}
		if res.RowsAffected == 0 {
			return nil, NewConflictError("insufficient stock for '%s'. Available: %d, Requested: %d",
				veg.Name, veg.StockQuantity, item.Quantity)
		}
	}

	detail := &OrderDetail{
		ID:              order.ID,
		UserID:          order.UserID,
		OrderDate:       order.OrderDate,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		Items:           make([]OrderItemDetail, 0, len(orderItems)),
	}
	for _, oi := range orderItems {
		veg := vegByID[oi.VegetableID]
		detail.Items = append(detail.Items, OrderItemDetail{
			ID:                oi.ID,
			VegetableID:       oi.VegetableID,
			VegetableName:     veg.Name,
			VegetableImageUrl: veg.ImageUrl,
			Quantity:          oi.Quantity,
			Price:             oi.Price,
			Subtotal:          oi.Subtotal,
		})
	}
	return detail, nil
}

// CancelOrder sets the order to Cancelled and returns every item's
// quantity to stock. Only Pending and Confirmed orders can be cancelled.
func (s *OrderService) CancelOrder(orderID uint) (*OrderDetail, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, NewTransactionError(tx.Error, "failed to begin transaction")
	}

	order, err := s.loadCancellableOrder(tx, orderID, "cancelled")
	if err != nil {
		s.rollback(tx, err)
		return nil, err
	}

	if err := tx.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		txErr := NewTransactionError(err, "failed to update order %d status", orderID)
		s.rollback(tx, txErr)
		return nil, txErr
	}

	if err := s.restoreStock(tx, order.Items); err != nil {
		s.rollback(tx, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		commitErr := NewTransactionError(err, "failed to commit cancellation")
		s.rollback(tx, commitErr)
		return nil, commitErr
	}

	utils.InfoLogger.Printf("Order %d cancelled, stock restored for %d item(s)", orderID, len(order.Items))
	return s.GetOrderByID(orderID)
}

// DeleteOrder restores stock exactly like CancelOrder, then removes the
// item rows before the order row to satisfy the foreign key.
func (s *OrderService) DeleteOrder(orderID uint) (bool, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return false, NewTransactionError(tx.Error, "failed to begin transaction")
	}

	order, err := s.loadCancellableOrder(tx, orderID, "deleted")
	if err != nil {
		s.rollback(tx, err)
		return false, err
	}

	if err := s.restoreStock(tx, order.Items); err != nil {
		s.rollback(tx, err)
		return false, err
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		txErr := NewTransactionError(err, "failed to delete items of order %d", orderID)
		s.rollback(tx, txErr)
		return false, txErr
	}
	if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
		txErr := NewTransactionError(err, "failed to delete order %d", orderID)
		s.rollback(tx, txErr)
		return false, txErr
	}

	if err := tx.Commit().Error; err != nil {
		commitErr := NewTransactionError(err, "failed to commit deletion")
		s.rollback(tx, commitErr)
		return false, commitErr
	}

	utils.InfoLogger.Printf("Order %d permanently deleted", orderID)
	return true, nil
}

// UpdateOrderStatus sets the status unconditionally. Any known status is
// accepted regardless of the current one; the transition graph is not
// enforced here, the admin workflow relies on being able to move orders
// freely.
func (s *OrderService) UpdateOrderStatus(orderID uint, status models.OrderStatus) (*OrderDetail, error) {
	if !status.Valid() {
		return nil, NewValidationError("unknown order status: %s", status)
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("order with ID %d not found", orderID)
		}
		return nil, NewTransactionError(err, "failed to load order %d", orderID)
	}

	if err := s.DB.Model(&order).Update("status", status).Error; err != nil {
		return nil, NewTransactionError(err, "failed to update order %d status", orderID)
	}

	utils.InfoLogger.Printf("Order %d status updated to %s", orderID, status)
	return s.GetOrderByID(orderID)
}

// GetOrdersByUser returns the user's orders, newest first, with items
// expanded.
func (s *OrderService) GetOrdersByUser(userID uint) ([]OrderDetail, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items.Vegetable").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error; err != nil {
		return nil, NewTransactionError(err, "failed to load orders for user %d", userID)
	}

	details := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		details = append(details, *toOrderDetail(&orders[i]))
	}
	return details, nil
}

// GetOrderByID returns one expanded order, or nil if it does not exist.
// Ownership is checked by the caller.
func (s *OrderService) GetOrderByID(orderID uint) (*OrderDetail, error) {
	var order models.Order
	if err := s.DB.Preload("Items.Vegetable").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, NewTransactionError(err, "failed to load order %d", orderID)
	}
	return toOrderDetail(&order), nil
}

// loadCancellableOrder loads an order with its items and checks it is
// still Pending or Confirmed.
func (s *OrderService) loadCancellableOrder(tx *gorm.DB, orderID uint, action string) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("order with ID %d not found", orderID)
		}
		return nil, NewTransactionError(err, "failed to load order %d", orderID)
	}
	if !order.Status.CanBeCancelled() {
		return nil, NewConflictError("order cannot be %s. Current status: %s", action, order.Status)
	}
	return &order, nil
}

// restoreStock returns each item's quantity to its vegetable and forces
// in_stock back to true. No upper bound is applied.
func (s *OrderService) restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		res := tx.Model(&models.Vegetable{}).
			Where("id = ?", item.VegetableID).
			Updates(map[string]interface{}{
				"stock_quantity": gorm.Expr("stock_quantity + ?", item.Quantity),
				"in_stock":       true,
			})
		if res.Error != nil {
			return NewTransactionError(res.Error, "failed to restore stock for vegetable %d", item.VegetableID)
		}
		utils.InfoLogger.Printf("Restored stock for vegetable %d: +%d", item.VegetableID, item.Quantity)
	}
	return nil
}

// rollback is best effort: a failed rollback is logged but never
// replaces the error that caused it.
func (s *OrderService) rollback(tx *gorm.DB, cause error) {
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		utils.ErrorLogger.Errorf("Rollback failed after %v: %v", cause, err)
	}
}

func toOrderDetail(order *models.Order) *OrderDetail {
	detail := &OrderDetail{
		ID:              order.ID,
		UserID:          order.UserID,
		OrderDate:       order.OrderDate,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		Items:           make([]OrderItemDetail, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, OrderItemDetail{
			ID:                item.ID,
			VegetableID:       item.VegetableID,
			VegetableName:     item.Vegetable.Name,
			VegetableImageUrl: item.Vegetable.ImageUrl,
			Quantity:          item.Quantity,
			Price:             item.Price,
			Subtotal:          item.Subtotal,
		})
	}
	return detail
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
