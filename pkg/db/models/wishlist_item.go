package models

import "time"

// WishlistItem links a user to a liked product.
type WishlistItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:wishlist_items_user_product_key" json:"user_id"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:wishlist_items_user_product_key" json:"product_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
