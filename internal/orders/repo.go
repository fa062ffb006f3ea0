package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists orders and their frozen line items.
type Repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit("Items").Create(order).Error
}

func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Omit("Product").Create(&items).Error
}

// FindByID loads the order header only.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindWithItems loads the order with each item joined to its product.
func (r *Repository) FindWithItems(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items", orderedItems).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's orders newest first, each with its items.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB(ctx).
		Preload("Items", orderedItems).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes the status column and reports whether the order exists.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	return res.RowsAffected > 0, res.Error
}

// MarkCancelled moves the order to cancelled unless it is already terminal.
// It reports false when no row changed, so exactly one concurrent caller wins.
func (r *Repository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, enums.CancellableOrderStatuses()).
		Updates(map[string]any{"status": enums.OrderStatusCancelled, "updated_at": time.Now().UTC()})
	return res.RowsAffected > 0, res.Error
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
