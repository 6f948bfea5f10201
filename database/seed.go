package database

import (
	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/models"
	"github.com/veggiecommerce/veggie-app/utils"
)

// Seed fills the catalog on first run. It is idempotent: once any
// category exists it does nothing.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Leafy Greens", Description: "Fresh leafy vegetables"},
		{Name: "Root Vegetables", Description: "Nutritious root vegetables"},
		{Name: "Fruits", Description: "Fresh vegetables that are technically fruits"},
		{Name: "Herbs", Description: "Fresh aromatic herbs"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	vegetables := []models.Vegetable{
		{
			Name:          "Fresh Spinach",
			Description:   "Organic fresh spinach leaves, perfect for salads and cooking",
			Price:         45.99,
			ImageUrl:      "https://images.pexels.com/photos/2255925/pexels-photo-2255925.jpeg",
			CategoryID:    categories[0].ID,
			InStock:       true,
			StockQuantity: 50,
			Unit:          "bunch",
			IsOrganic:     true,
			Origin:        "Local Farm",
		},
		{
			Name:          "Organic Carrots",
			Description:   "Sweet and crunchy organic carrots, great for snacking and cooking",
			Price:         35.49,
			ImageUrl:      "https://images.pexels.com/photos/143133/pexels-photo-143133.jpeg",
			CategoryID:    categories[1].ID,
			InStock:       true,
			StockQuantity: 75,
			Unit:          "kg",
			IsOrganic:     true,
			Origin:        "Punjab",
		},
		{
			Name:          "Fresh Tomatoes",
			Description:   "Juicy red tomatoes, perfect for salads and sauces",
			Price:         55.99,
			ImageUrl:      "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg",
			CategoryID:    categories[2].ID,
			InStock:       true,
			StockQuantity: 30,
			Unit:          "kg",
			Origin:        "Maharashtra",
		},
		{
			Name:          "Fresh Basil",
			Description:   "Aromatic fresh basil leaves, perfect for Italian dishes",
			Price:         25.99,
			ImageUrl:      "https://images.pexels.com/photos/4198021/pexels-photo-4198021.jpeg",
			CategoryID:    categories[3].ID,
			InStock:       true,
			StockQuantity: 25,
			Unit:          "pack",
			IsOrganic:     true,
			Origin:        "Local Greenhouse",
		},
		{
			Name:          "Broccoli",
			Description:   "Fresh green broccoli crowns, packed with nutrients",
			Price:         65.49,
			ImageUrl:      "https://images.pexels.com/photos/47347/broccoli-vegetable-food-healthy-47347.jpeg",
			CategoryID:    categories[0].ID,
			InStock:       true,
			StockQuantity: 40,
			Unit:          "head",
			Origin:        "Himachal Pradesh",
		},
		{
			Name:          "Sweet Potatoes",
			Description:   "Orange sweet potatoes, naturally sweet and nutritious",
			Price:         42.99,
			ImageUrl:      "https://images.pexels.com/photos/89247/pexels-photo-89247.jpeg",
			CategoryID:    categories[1].ID,
			InStock:       true,
			StockQuantity: 60,
			Unit:          "kg",
			IsOrganic:     true,
			Origin:        "Tamil Nadu",
		},
	}
	if err := db.Create(&vegetables).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d categories and %d vegetables", len(categories), len(vegetables))
	return nil
}
