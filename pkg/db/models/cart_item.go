package models

import "time"

// CartItem is one (user, product) line of a shopping cart.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:cart_items_user_product_key" json:"user_id"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:cart_items_user_product_key" json:"product_id"`
	Quantity  float64   `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
