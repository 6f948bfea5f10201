package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veggiecommerce/veggie-app/services"
	"github.com/veggiecommerce/veggie-app/utils"
)

type VegetableController struct {
	Service *services.VegetableService
}

func NewVegetableController(service *services.VegetableService) *VegetableController {
	return &VegetableController{Service: service}
}

// GetAllVegetables
func (vc *VegetableController) GetAllVegetables(c *gin.Context) {
	vegetables, err := vc.Service.GetAllVegetables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vegetables", vegetables)
}

// GetVegetableByID
func (vc *VegetableController) GetVegetableByID(c *gin.Context) {
	idStr := c.Param("veg_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid vegetable id"))
		return
	}

	vegetable, err := vc.Service.GetVegetableByID(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if vegetable == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vegetable not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Vegetable detail", vegetable)
}

// GetVegetablesByCategory -> /vegetables/by-category?category_id=N
func (vc *VegetableController) GetVegetablesByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
		return
	}

	vegetables, err := vc.Service.GetVegetablesByCategory(uint(categoryID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Vegetables by category", vegetables)
}

// SearchVegetables -> /vegetables/search?query=spin
func (vc *VegetableController) SearchVegetables(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter is required"))
		return
	}

	vegetables, err := vc.Service.SearchVegetables(query)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Search results", vegetables)
}
