package wishlist

import (
	"context"
	"errors"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// ListItems returns the user's wishlist joined with products, newest first.
func (r *Repository) ListItems(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem inserts the (user, product) pair and returns its id. An existing
// pair is left alone and its id returned.
func (r *Repository) AddItem(ctx context.Context, userID, productID int64) (int64, error) {
	var existing models.WishlistItem
	err := r.DB(ctx).
		Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	if err := r.DB(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

// RemoveItem deletes the like and reports whether it existed.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID int64) (bool, error) {
	res := r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected > 0, res.Error
}

// Exists reports whether the product is on the user's wishlist.
func (r *Repository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Clear empties the wishlist and returns how many rows were removed.
func (r *Repository) Clear(ctx context.Context, userID int64) (int64, error) {
	res := r.DB(ctx).Where("user_id = ?", userID).Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}
