package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/models"
)

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, []models.Vegetable) {
	t.Helper()
	category := models.Category{Name: "Leafy Greens", Description: "Fresh leafy vegetables"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	vegetables := []models.Vegetable{
		{
			CategoryID: category.ID, Name: "Fresh Spinach",
			Description: "Organic fresh spinach leaves", Price: 45.99,
			InStock: true, StockQuantity: 50, Unit: "bunch", IsOrganic: true,
		},
		{
			CategoryID: category.ID, Name: "Kale",
			Description: "Curly green kale", Price: 38.50,
			InStock: true, StockQuantity: 20, Unit: "bunch",
		},
	}
	if err := db.Create(&vegetables).Error; err != nil {
		t.Fatalf("failed to seed vegetables: %v", err)
	}
	return category, vegetables
}

func TestGetAllVegetablesJoinsCategoryName(t *testing.T) {
	db := setupTestDB(t)
	category, _ := seedCatalog(t, db)
	svc := NewVegetableService(db)

	details, err := svc.GetAllVegetables()
	assert.NoError(t, err)
	assert.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, category.ID, d.CategoryID)
		assert.Equal(t, "Leafy Greens", d.CategoryName)
	}
}

func TestGetVegetableByID(t *testing.T) {
	db := setupTestDB(t)
	_, vegetables := seedCatalog(t, db)
	svc := NewVegetableService(db)

	detail, err := svc.GetVegetableByID(vegetables[0].ID)
	assert.NoError(t, err)
	assert.NotNil(t, detail)
	assert.Equal(t, "Fresh Spinach", detail.Name)
	assert.Equal(t, 45.99, detail.Price)
	assert.True(t, detail.IsOrganic)

	missing, err := svc.GetVegetableByID(999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetVegetablesByCategory(t *testing.T) {
	db := setupTestDB(t)
	category, _ := seedCatalog(t, db)

	other := models.Category{Name: "Herbs"}
	assert.NoError(t, db.Create(&other).Error)
	assert.NoError(t, db.Create(&models.Vegetable{
		CategoryID: other.ID, Name: "Fresh Basil", Price: 25.99,
		InStock: true, StockQuantity: 25, Unit: "pack",
	}).Error)

	svc := NewVegetableService(db)

	details, err := svc.GetVegetablesByCategory(category.ID)
	assert.NoError(t, err)
	assert.Len(t, details, 2)

	herbs, err := svc.GetVegetablesByCategory(other.ID)
	assert.NoError(t, err)
	assert.Len(t, herbs, 1)
	assert.Equal(t, "Fresh Basil", herbs[0].Name)
}

func TestSearchVegetablesMatchesNameAndDescription(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewVegetableService(db)

	byName, err := svc.SearchVegetables("Kale")
	assert.NoError(t, err)
	assert.Len(t, byName, 1)
	assert.Equal(t, "Kale", byName[0].Name)

	byDescription, err := svc.SearchVegetables("spinach leaves")
	assert.NoError(t, err)
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "Fresh Spinach", byDescription[0].Name)

	none, err := svc.SearchVegetables("durian")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
