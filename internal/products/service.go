package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/pagination"
)

// Service exposes the public catalog operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	SetStock(ctx context.Context, id int64, quantity float64) error
	SetPrice(ctx context.Context, id int64, price float64) error
}

type catalogRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAll(ctx context.Context, filters ProductListFilters, params pagination.Params) (ProductListResult, error)
	GetCategories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	UpdateStock(ctx context.Context, id int64, quantity float64) (bool, error)
	UpdatePrice(ctx context.Context, id int64, price float64) (bool, error)
}

// service implements the product service.
type service struct {
	repo catalogRepository
}

// NewService constructs a product service instance.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	filters := input.Filters
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice")
	}

	page, err := s.repo.FindAll(ctx, filters, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch products")
	}
	return &page, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid product ID")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch product")
	}
	return product, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *service) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return []models.Product{}, nil
	}
	if limit > pagination.MaxPageSize {
		limit = pagination.MaxPageSize
	}
	rows, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to search products")
	}
	return nonNil(rows), nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit > pagination.MaxPageSize {
		limit = pagination.MaxPageSize
	}
	rows, err := s.repo.GetFeatured(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch featured products")
	}
	return nonNil(rows), nil
}

func (s *service) SetStock(ctx context.Context, id int64, quantity float64) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}
	ok, err := s.repo.UpdateStock(ctx, id, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update stock")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return nil
}

func (s *service) SetPrice(ctx context.Context, id int64, price float64) error {
	if price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	ok, err := s.repo.UpdatePrice(ctx, id, price)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update price")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return nil
}

func nonNil(rows []models.Product) []models.Product {
	if rows == nil {
		return []models.Product{}
	}
	return rows
}
