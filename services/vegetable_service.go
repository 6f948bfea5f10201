package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/models"
)

// VegetableService is the read side of the catalog. Stock mutation
// lives in OrderService only.
type VegetableService struct {
	DB *gorm.DB
}

func NewVegetableService(db *gorm.DB) *VegetableService {
	return &VegetableService{DB: db}
}

type VegetableDetail struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageUrl      string    `json:"image_url"`
	CategoryID    uint      `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	InStock       bool      `json:"in_stock"`
	StockQuantity int       `json:"stock_quantity"`
	Unit          string    `json:"unit"`
	NutritionInfo string    `json:"nutrition_info,omitempty"`
	Origin        string    `json:"origin,omitempty"`
	IsOrganic     bool      `json:"is_organic"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *VegetableService) GetAllVegetables() ([]VegetableDetail, error) {
	var vegetables []models.Vegetable
	if err := s.DB.Preload("Category").Find(&vegetables).Error; err != nil {
		return nil, err
	}
	return toVegetableDetails(vegetables), nil
}

// GetVegetableByID returns nil when the vegetable does not exist.
func (s *VegetableService) GetVegetableByID(id uint) (*VegetableDetail, error) {
	var vegetable models.Vegetable
	if err := s.DB.Preload("Category").First(&vegetable, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	detail := toVegetableDetail(&vegetable)
	return &detail, nil
}

func (s *VegetableService) GetVegetablesByCategory(categoryID uint) ([]VegetableDetail, error) {
	var vegetables []models.Vegetable
	if err := s.DB.Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&vegetables).Error; err != nil {
		return nil, err
	}
	return toVegetableDetails(vegetables), nil
}

// SearchVegetables matches the query as a substring of name or
// description.
func (s *VegetableService) SearchVegetables(query string) ([]VegetableDetail, error) {
	var vegetables []models.Vegetable
	pattern := "%" + query + "%"
	if err := s.DB.Preload("Category").
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Find(&vegetables).Error; err != nil {
		return nil, err
	}
	return toVegetableDetails(vegetables), nil
}

func toVegetableDetail(v *models.Vegetable) VegetableDetail {
	return VegetableDetail{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		Price:         v.Price,
		ImageUrl:      v.ImageUrl,
		CategoryID:    v.CategoryID,
		CategoryName:  v.Category.Name,
		InStock:       v.InStock,
		StockQuantity: v.StockQuantity,
		Unit:          v.Unit,
		NutritionInfo: v.NutritionInfo,
		Origin:        v.Origin,
		IsOrganic:     v.IsOrganic,
		CreatedAt:     v.CreatedAt,
	}
}

func toVegetableDetails(vegetables []models.Vegetable) []VegetableDetail {
	details := make([]VegetableDetail, 0, len(vegetables))
	for i := range vegetables {
		details = append(details, toVegetableDetail(&vegetables[i]))
	}
	return details
}
