package models

import "time"

// Vegetable is both the catalog entry and the inventory unit.
// Stock fields are only ever mutated by the order service; after every
// order mutation InStock must equal StockQuantity > 0.
type Vegetable struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Category      Category  `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Description   string    `gorm:"type:varchar(1000)" json:"description"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageUrl      string    `gorm:"type:varchar(500)" json:"image_url"`
	InStock       bool      `gorm:"not null;default:true" json:"in_stock"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	Unit          string    `gorm:"type:varchar(50);not null" json:"unit"` // kg, piece, bunch, ...
	NutritionInfo string    `gorm:"type:varchar(1000)" json:"nutrition_info,omitempty"`
	Origin        string    `gorm:"type:varchar(200)" json:"origin,omitempty"`
	IsOrganic     bool      `gorm:"not null;default:false" json:"is_organic"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
