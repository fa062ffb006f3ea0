// Package testdb opens migrated SQLite stores for repository and service tests.
package testdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/seed"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/migrate"
)

// Open returns a migrated, empty store backed by a file in t.TempDir().
func Open(t testing.TB) *db.Client {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          config.SQLiteDSN(filepath.Join(t.TempDir(), "shop.db"), 5*time.Second),
		MaxOpenConns: 4,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := migrate.Apply(ctx, client); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}

// OpenSeeded returns a migrated store holding the embedded countries and products.
func OpenSeeded(t testing.TB) *db.Client {
	t.Helper()
	client := Open(t)
	if _, err := seed.NewSeeder(client, nil).Run(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return client
}

// ProductByName loads a seeded product.
func ProductByName(t testing.TB, client *db.Client, name string) models.Product {
	t.Helper()
	var product models.Product
	if err := client.DB().Where("name = ?", name).First(&product).Error; err != nil {
		t.Fatalf("load product %q: %v", name, err)
	}
	return product
}

// CreateProduct inserts a product with the given price and stock.
func CreateProduct(t testing.TB, client *db.Client, name string, price, stock float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Description:   name + " description",
		PricePerKg:    price,
		ImageURL:      "/images/products/test.jpg",
		StockQuantity: stock,
		InStock:       stock > 0,
		SellerName:    "Test Farm",
		Category:      "Other",
	}
	if err := client.DB().Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// CreateUser inserts a user bound to the first country, creating one when needed.
func CreateUser(t testing.TB, client *db.Client, email string) models.User {
	t.Helper()
	var country models.Country
	if err := client.DB().Order("id").First(&country).Error; err != nil {
		country = models.Country{Code: fmt.Sprintf("T%d", time.Now().UnixNano()%100), Name: "Testland", PhoneCode: "+1"}
		if err := client.DB().Create(&country).Error; err != nil {
			t.Fatalf("create country: %v", err)
		}
	}
	user := models.User{
		FirstName:    "Test",
		LastName:     "Shopper",
		Email:        email,
		Mobile:       "5550100",
		CountryID:    country.ID,
		PasswordHash: "hash",
	}
	if err := client.DB().Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
