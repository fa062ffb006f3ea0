package product

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/veggieshop-backend/internal/testdb"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	catalogRepository
}

func (failingRepo) FindAll(context.Context, ProductListFilters, pagination.Params) (ProductListResult, error) {
	return ProductListResult{}, errors.New("disk on fire")
}

func (failingRepo) GetCategories(context.Context) ([]string, error) {
	return nil, errors.New("disk on fire")
}

func TestServiceErrors(t *testing.T) {
	client := testdb.OpenSeeded(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.GetProduct(ctx, 0)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.GetProduct(ctx, 424242)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{MinPrice: ptr(5.0), MaxPrice: ptr(1.0)}})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	assert.True(t, pkgerrors.HasCode(svc.SetStock(ctx, 1, -1), pkgerrors.CodeValidation))
	assert.True(t, pkgerrors.HasCode(svc.SetPrice(ctx, 424242, 1), pkgerrors.CodeNotFound))

	results, err := svc.Search(ctx, "   ", 5)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{}, results)
}

func TestServiceWrapsRepositoryFailures(t *testing.T) {
	svc, err := NewService(failingRepo{})
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), ListProductsInput{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))

	_, err = svc.Categories(context.Background())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
}

func TestPriceChangeIsVisible(t *testing.T) {
	client := testdb.OpenSeeded(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	ctx := context.Background()

	carrots := testdb.ProductByName(t, client, "Organic Carrots")
	require.NoError(t, svc.SetPrice(ctx, carrots.ID, 3.49))

	got, err := svc.GetProduct(ctx, carrots.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.49, got.PricePerKg)
}
