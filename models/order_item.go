package models

import "time"

// OrderItem snapshots the vegetable price at order time; later catalog
// price changes never touch it.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VegetableID uint      `gorm:"not null;index" json:"vegetable_id"`
	Vegetable   Vegetable `gorm:"foreignKey:VegetableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Subtotal    float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
