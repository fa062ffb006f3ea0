package product

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultSearchLimit bounds quick-search results.
	DefaultSearchLimit = 10
	// DefaultFeaturedLimit bounds the featured selection.
	DefaultFeaturedLimit = 8
)

// Repository issues the catalog queries.
type Repository struct {
	repo.Base
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a copy bound to the transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll filters, sorts and pages the catalog. An empty match is an empty
// page, never an error.
func (r *Repository) FindAll(ctx context.Context, filters ProductListFilters, params pagination.Params) (ProductListResult, error) {
	params = params.Normalize()
	newQuery := func() *gorm.DB {
		return r.applyFilters(r.DB(ctx).Model(&models.Product{}), filters)
	}

	var total int64
	if err := newQuery().Count(&total).Error; err != nil {
		return ProductListResult{}, err
	}

	var rows []models.Product
	if err := newQuery().
		Order(filters.orderClause()).
		Order("id ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&rows).Error; err != nil {
		return ProductListResult{}, err
	}

	return pagination.NewPage(rows, total, params), nil
}

func (r *Repository) applyFilters(query *gorm.DB, filters ProductListFilters) *gorm.DB {
	if strings.TrimSpace(filters.Search) != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.InStock != nil {
		query = query.Where("in_stock = ?", *filters.InStock)
	}
	if filters.MinPrice != nil {
		query = query.Where("price_per_kg >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price_per_kg <= ?", *filters.MaxPrice)
	}
	return query
}

// GetCategories returns the distinct categories in alphabetical order.
func (r *Repository) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.DB(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Search matches the term against names and descriptions, names first.
func (r *Repository) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := likePattern(term)
	var rows []models.Product
	if err := r.DB(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, name ASC",
			Vars:               []any{pattern},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetFeatured returns a random selection of in-stock products.
func (r *Repository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	var rows []models.Product
	if err := r.DB(ctx).
		Where("in_stock = ?", true).
		Order("RANDOM()").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStock overwrites the stock level and recomputes in_stock.
func (r *Repository) UpdateStock(ctx context.Context, id int64, quantity float64) (bool, error) {
	res := r.DB(ctx).Exec(
		`UPDATE products SET stock_quantity = ?, in_stock = ?, updated_at = ? WHERE id = ?`,
		quantity, quantity > 0, time.Now().UTC(), id,
	)
	return res.RowsAffected > 0, res.Error
}

// UpdatePrice changes the per-kilogram price.
func (r *Repository) UpdatePrice(ctx context.Context, id int64, price float64) (bool, error) {
	res := r.DB(ctx).Exec(
		`UPDATE products SET price_per_kg = ?, updated_at = ? WHERE id = ?`,
		price, time.Now().UTC(), id,
	)
	return res.RowsAffected > 0, res.Error
}

// DecreaseStock removes quantity from the stock only when enough is left. It
// reports false when the product is missing or short, leaving the row as is.
func (r *Repository) DecreaseStock(ctx context.Context, id int64, quantity float64) (bool, error) {
	res := r.DB(ctx).Exec(
		`UPDATE products
		SET stock_quantity = stock_quantity - ?,
			in_stock = (stock_quantity - ? > 0),
			updated_at = ?
		WHERE id = ? AND stock_quantity >= ?`,
		quantity, quantity, time.Now().UTC(), id, quantity,
	)
	return res.RowsAffected > 0, res.Error
}

// IncreaseStock puts quantity back on the shelf.
func (r *Repository) IncreaseStock(ctx context.Context, id int64, quantity float64) (bool, error) {
	res := r.DB(ctx).Exec(
		`UPDATE products
		SET stock_quantity = stock_quantity + ?,
			in_stock = (stock_quantity + ? > 0),
			updated_at = ?
		WHERE id = ?`,
		quantity, quantity, time.Now().UTC(), id,
	)
	return res.RowsAffected > 0, res.Error
}
