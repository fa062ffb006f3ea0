package product

import (
	"strings"

	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
	"github.com/angelmondragon/veggieshop-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the catalog endpoint.
// Nil pointers and empty strings leave the predicate out.
type ProductListFilters struct {
	Search    string
	Category  string
	InStock   *bool
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    enums.ProductSort
	SortOrder enums.SortOrder
}

// ListProductsInput captures the filters plus the requested page.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
}

// ProductListResult is the catalog page returned to clients.
type ProductListResult = pagination.Page[models.Product]

func (f ProductListFilters) orderClause() string {
	return f.SortBy.Column() + " " + f.SortOrder.SQL()
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
