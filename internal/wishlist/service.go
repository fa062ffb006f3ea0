package wishlist

import (
	"context"

	"github.com/angelmondragon/veggieshop-backend/internal/cart"
	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/money"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	CartRepo     *cart.Repository
	ProductRepo  *product.Repository
	Tx           txRunner
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error)
	AddItem(ctx context.Context, userID, productID int64) (int64, error)
	RemoveItem(ctx context.Context, userID, productID int64) error
	IsInWishlist(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	MoveToCart(ctx context.Context, userID, productID int64, quantity float64) error
}

type service struct {
	wishlistRepo *Repository
	cartRepo     *cart.Repository
	productRepo  *product.Repository
	tx           txRunner
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		cartRepo:     params.CartRepo,
		productRepo:  params.ProductRepo,
		tx:           params.Tx,
	}, nil
}

// GetWishlist returns the wishlist with product snapshots.
func (s *service) GetWishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch wishlist")
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	return items, nil
}

// AddItem ensures the product exists and adds it to the wishlist.
func (s *service) AddItem(ctx context.Context, userID, productID int64) (int64, error) {
	if productID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Product ID is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if repo.IsNotFound(err) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	id, err := s.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to add item to wishlist")
	}
	return id, nil
}

// RemoveItem drops the wishlist entry.
func (s *service) RemoveItem(ctx context.Context, userID, productID int64) error {
	removed, err := s.wishlistRepo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to remove item from wishlist")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in wishlist")
	}
	return nil
}

func (s *service) IsInWishlist(ctx context.Context, userID, productID int64) (bool, error) {
	ok, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check wishlist")
	}
	return ok, nil
}

func (s *service) Clear(ctx context.Context, userID int64) (int64, error) {
	count, err := s.wishlistRepo.Clear(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear wishlist")
	}
	return count, nil
}

// MoveToCart merges the product into the cart and drops it from the wishlist
// in one transaction.
func (s *service) MoveToCart(ctx context.Context, userID, productID int64, quantity float64) error {
	if quantity <= 0 || !money.ValidQuantity(quantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Valid quantity is required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		wishlistRepo := s.wishlistRepo.WithTx(tx)
		present, err := wishlistRepo.Exists(ctx, userID, productID)
		if err != nil {
			return err
		}
		if !present {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in wishlist")
		}
		if _, err := s.cartRepo.WithTx(tx).AddItem(ctx, userID, productID, quantity); err != nil {
			return err
		}
		_, err = wishlistRepo.RemoveItem(ctx, userID, productID)
		return err
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to move item to cart")
	}
	return nil
}
