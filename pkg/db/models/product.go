package models

import "time"

// Product is a vegetable sold by the kilogram.
type Product struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Description   string    `gorm:"column:description;not null" json:"description"`
	PricePerKg    float64   `gorm:"column:price_per_kg;not null" json:"price_per_kg"`
	ImageURL      string    `gorm:"column:image_url;not null" json:"image_url"`
	StockQuantity float64   `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	InStock       bool      `gorm:"column:in_stock;not null" json:"in_stock"`
	SellerName    string    `gorm:"column:seller_name;not null" json:"seller_name"`
	Category      string    `gorm:"column:category;not null" json:"category"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
