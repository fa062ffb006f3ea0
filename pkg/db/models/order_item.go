package models

import "time"

// OrderItem freezes the price a product was bought at.
type OrderItem struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID         int64     `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID       int64     `gorm:"column:product_id;not null" json:"product_id"`
	Quantity        float64   `gorm:"column:quantity;not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"column:price_at_purchase;not null" json:"price_at_purchase"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
