package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	countries, err := Countries()
	require.NoError(t, err)
	assert.Len(t, countries, 40)

	products, err := Products()
	require.NoError(t, err)
	assert.Len(t, products, 51)

	byName := map[string]models.Product{}
	for _, p := range products {
		byName[p.Name] = p
		assert.Equal(t, p.StockQuantity > 0, p.InStock, p.Name)
	}
	carrots := byName["Organic Carrots"]
	assert.Equal(t, 2.99, carrots.PricePerKg)
	assert.Equal(t, float64(200), carrots.StockQuantity)
	assert.False(t, byName["Fresh Corn"].InStock)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    config.SQLiteDSN(filepath.Join(t.TempDir(), "seed.db"), 5*time.Second),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	boot := NewBootstrapper(client, nil)
	require.NoError(t, boot.Initialize(ctx))
	require.NoError(t, boot.Initialize(ctx))

	var countries, products int64
	require.NoError(t, client.DB().Model(&models.Country{}).Count(&countries).Error)
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(40), countries)
	assert.Equal(t, int64(51), products)

	result, err := NewSeeder(client, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}
