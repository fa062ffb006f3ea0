package orders

import (
	"context"

	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"gorm.io/gorm"
)

// StockDecrementer takes ordered quantity off a product inside the checkout
// transaction. It returns false when the product cannot cover the quantity.
type StockDecrementer interface {
	Decrement(ctx context.Context, tx *gorm.DB, productID int64, quantity float64) (bool, error)
}

// StockDecrementerFunc adapts a function to StockDecrementer.
type StockDecrementerFunc func(ctx context.Context, tx *gorm.DB, productID int64, quantity float64) (bool, error)

func (f StockDecrementerFunc) Decrement(ctx context.Context, tx *gorm.DB, productID int64, quantity float64) (bool, error) {
	return f(ctx, tx, productID, quantity)
}

type productStock struct {
	products *product.Repository
}

// NewProductStock decrements through the product repository's conditional update.
func NewProductStock(products *product.Repository) StockDecrementer {
	return productStock{products: products}
}

func (p productStock) Decrement(ctx context.Context, tx *gorm.DB, productID int64, quantity float64) (bool, error) {
	return p.products.WithTx(tx).DecreaseStock(ctx, productID, quantity)
}
