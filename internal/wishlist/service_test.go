package wishlist

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/angelmondragon/veggieshop-backend/internal/cart"
	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"github.com/angelmondragon/veggieshop-backend/internal/testdb"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc      Service
	client   *db.Client
	cartRepo *cart.Repository
	wishRepo *Repository
	userID   int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	client := testdb.OpenSeeded(t)
	f := fixture{
		client:   client,
		cartRepo: cart.NewRepository(client.DB()),
		wishRepo: NewRepository(client.DB()),
		userID:   testdb.CreateUser(t, client, "wish@example.com").ID,
	}
	svc, err := NewService(ServiceParams{
		WishlistRepo: f.wishRepo,
		CartRepo:     f.cartRepo,
		ProductRepo:  product.NewRepository(client.DB()),
		Tx:           client,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestAddItemIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.AddItem(ctx, f.userID, 4)
	require.NoError(t, err)
	second, err := f.svc.AddItem(ctx, f.userID, 4)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	items, err := f.svc.GetWishlist(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Arugula", items[0].Product.Name)

	in, err := f.svc.IsInWishlist(ctx, f.userID, 4)
	require.NoError(t, err)
	assert.True(t, in)

	_, err = f.svc.AddItem(ctx, f.userID, 123456)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, f.userID, 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, f.userID, 2)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveItem(ctx, f.userID, 1))
	err = f.svc.RemoveItem(ctx, f.userID, 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	cleared, err := f.svc.Clear(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
}

func TestMoveToCartMergesAndRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cartRepo.AddItem(ctx, f.userID, 9, 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, f.userID, 9)
	require.NoError(t, err)

	require.NoError(t, f.svc.MoveToCart(ctx, f.userID, 9, 1))

	in, err := f.svc.IsInWishlist(ctx, f.userID, 9)
	require.NoError(t, err)
	assert.False(t, in)

	items, err := f.cartRepo.ListItems(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0].Quantity)
}

func TestMoveToCartRejectsMissingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.MoveToCart(ctx, f.userID, 9, 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	items, err := f.cartRepo.ListItems(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMoveToCartRejectsNonFiniteQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, f.userID, 9)
	require.NoError(t, err)

	for _, q := range []float64{math.Inf(1), math.NaN(), 1e308} {
		err := f.svc.MoveToCart(ctx, f.userID, 9, q)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "%v", q)
	}

	in, err := f.svc.IsInWishlist(ctx, f.userID, 9)
	require.NoError(t, err)
	assert.True(t, in)
}

type failingCartTx struct {
	client *db.Client
}

func (f failingCartTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return f.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errors.New("commit refused")
	})
}

func TestMoveToCartRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, f.userID, 9)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		WishlistRepo: f.wishRepo,
		CartRepo:     f.cartRepo,
		ProductRepo:  product.NewRepository(f.client.DB()),
		Tx:           failingCartTx{client: f.client},
	})
	require.NoError(t, err)

	err = svc.MoveToCart(ctx, f.userID, 9, 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))

	in, err := f.svc.IsInWishlist(ctx, f.userID, 9)
	require.NoError(t, err)
	assert.True(t, in)
	items, err := f.cartRepo.ListItems(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
