package cart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/money"
)

// Summary is the cart view returned to shoppers.
type Summary struct {
	Items      []models.CartItem `json:"items"`
	TotalItems float64           `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

// Summarize totals the lines: Σ quantity and round(Σ quantity × price, 2).
func Summarize(items []models.CartItem) Summary {
	if items == nil {
		items = []models.CartItem{}
	}
	quantities := make([]float64, 0, len(items))
	lines := make([]money.Line, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, item.Quantity)
		if item.Product != nil {
			lines = append(lines, money.Line{Quantity: item.Quantity, UnitPrice: item.Product.PricePerKg})
		}
	}
	return Summary{
		Items:      items,
		TotalItems: money.SumQuantities(quantities),
		TotalPrice: money.Total(lines),
	}
}

type cartRepository interface {
	ListItems(ctx context.Context, userID int64) ([]models.CartItem, error)
	AddItem(ctx context.Context, userID, productID int64, quantity float64) (int64, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity float64) (bool, error)
	RemoveItem(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	CountQuantity(ctx context.Context, userID int64) (float64, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// Service exposes cart operations.
type Service interface {
	GetCart(ctx context.Context, userID int64) (*Summary, error)
	AddItem(ctx context.Context, userID, productID int64, quantity float64) (int64, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity float64) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context, userID int64) (float64, error)
}

type service struct {
	repo     cartRepository
	products productLoader
}

// NewService builds a cart service with the required dependencies.
func NewService(cartRepo cartRepository, products productLoader) (Service, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: cartRepo, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, userID int64) (*Summary, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch cart")
	}
	summary := Summarize(items)
	return &summary, nil
}

func (s *service) AddItem(ctx context.Context, userID, productID int64, quantity float64) (int64, error) {
	if productID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Product ID is required")
	}
	if quantity <= 0 || !money.ValidQuantity(quantity) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Valid quantity is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if repo.IsNotFound(err) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	id, err := s.repo.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to add item to cart")
	}
	return id, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity float64) error {
	if !money.ValidQuantity(quantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Valid quantity is required")
	}
	changed, err := s.repo.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update cart")
	}
	if !changed {
		return pkgerrors.New(pkgerrors.CodeValidation, "Failed to update cart item")
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID int64) error {
	removed, err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to remove item from cart")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in cart")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear cart")
	}
	return count, nil
}

func (s *service) Count(ctx context.Context, userID int64) (float64, error) {
	total, err := s.repo.CountQuantity(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to count cart items")
	}
	return total, nil
}
