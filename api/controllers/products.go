package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/veggieshop-backend/api/responses"
	"github.com/angelmondragon/veggieshop-backend/api/validators"
	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/pagination"
)

const (
	defaultSearchLimit   = 10
	defaultFeaturedLimit = 8
	maxSearchTermLength  = 100
)

// ProductList serves the filtered, sorted and paginated catalog.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseProductListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func parseProductListInput(r *http.Request) (product.ListProductsInput, error) {
	query := r.URL.Query()
	filters := product.ProductListFilters{
		Search:    validators.SanitizeString(query.Get("search"), maxSearchTermLength),
		Category:  validators.SanitizeString(query.Get("category"), maxSearchTermLength),
		InStock:   validators.ParseQueryBool(r, "inStock"),
		SortBy:    enums.ProductSort(strings.TrimSpace(query.Get("sortBy"))),
		SortOrder: enums.SortOrder(strings.TrimSpace(query.Get("sortOrder"))).Normalize(),
	}

	var err error
	if filters.MinPrice, err = validators.ParseQueryFloat(r, "minPrice"); err != nil {
		return product.ListProductsInput{}, err
	}
	if filters.MaxPrice, err = validators.ParseQueryFloat(r, "maxPrice"); err != nil {
		return product.ListProductsInput{}, err
	}

	pageNum, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1_000_000)
	if err != nil {
		return product.ListProductsInput{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return product.ListProductsInput{}, err
	}

	return product.ListProductsInput{
		Filters:    filters,
		Pagination: pagination.Params{Page: pageNum, PageSize: pageSize},
	}, nil
}

// ProductGet returns one product.
func ProductGet(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", "Invalid product ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ProductCategories(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// ProductSearch is the quick search used by the storefront search box.
func ProductSearch(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultSearchLimit, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		term := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchTermLength)

		items, err := svc.Search(r.Context(), strings.TrimSpace(term), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ProductFeatured(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultFeaturedLimit, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Featured(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
