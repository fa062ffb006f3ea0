package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for cart lines.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// ListItems returns the user's cart lines joined with their product, newest first.
func (r *Repository) ListItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
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

// AddItem merges quantity into the existing (user, product) line or inserts a
// new one, returning the line id.
func (r *Repository) AddItem(ctx context.Context, userID, productID int64, quantity float64) (int64, error) {
	var existing models.CartItem
	err := r.DB(ctx).
		Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&existing).Error
	switch {
	case err == nil:
		if err := r.DB(ctx).Exec(
			`UPDATE cart_items SET quantity = quantity + ?, updated_at = ? WHERE id = ?`,
			quantity, time.Now().UTC(), existing.ID,
		).Error; err != nil {
			return 0, err
		}
		return existing.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := r.DB(ctx).Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	default:
		return 0, err
	}
}

// UpdateQuantity sets the line quantity; zero or less removes the line. It
// reports whether a row changed.
func (r *Repository) UpdateQuantity(ctx context.Context, userID, productID int64, quantity float64) (bool, error) {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, productID)
	}
	res := r.DB(ctx).Exec(
		`UPDATE cart_items SET quantity = ?, updated_at = ? WHERE user_id = ? AND product_id = ?`,
		quantity, time.Now().UTC(), userID, productID,
	)
	return res.RowsAffected > 0, res.Error
}

// RemoveItem deletes the line and reports whether it existed.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID int64) (bool, error) {
	res := r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

// Clear removes every line of the user's cart and returns how many were deleted.
func (r *Repository) Clear(ctx context.Context, userID int64) (int64, error) {
	res := r.DB(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// CountQuantity returns Σ quantity over the user's cart.
func (r *Repository) CountQuantity(ctx context.Context, userID int64) (float64, error) {
	var total float64
	if err := r.DB(ctx).
		Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
