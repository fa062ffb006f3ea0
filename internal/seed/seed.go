package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/migrate"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

//go:embed data/*.json
var dataFS embed.FS

type countryRecord struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	PhoneCode string `json:"phone_code"`
}

type productRecord struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PricePerKg    float64 `json:"price_per_kg"`
	ImageURL      string  `json:"image_url"`
	StockQuantity float64 `json:"stock_quantity"`
	SellerName    string  `json:"seller_name"`
	Category      string  `json:"category"`
}

// Result reports how many rows each table received.
type Result struct {
	Countries int
	Products  int
}

// Countries returns the embedded country reference list.
func Countries() ([]models.Country, error) {
	var records []countryRecord
	if err := readJSON("data/countries.json", &records); err != nil {
		return nil, err
	}

	var errs error
	out := make([]models.Country, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Code) == "" || strings.TrimSpace(rec.Name) == "" || !strings.HasPrefix(rec.PhoneCode, "+") {
			errs = multierr.Append(errs, fmt.Errorf("country %d: incomplete record %+v", i, rec))
			continue
		}
		out = append(out, models.Country{Code: rec.Code, Name: rec.Name, PhoneCode: rec.PhoneCode})
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// Products returns the embedded starter catalog with in_stock derived from stock.
func Products() ([]models.Product, error) {
	var records []productRecord
	if err := readJSON("data/products.json", &records); err != nil {
		return nil, err
	}

	var errs error
	out := make([]models.Product, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" || rec.PricePerKg <= 0 || rec.StockQuantity < 0 {
			errs = multierr.Append(errs, fmt.Errorf("product %d (%q): invalid record", i, rec.Name))
			continue
		}
		out = append(out, models.Product{
			Name:          rec.Name,
			Description:   rec.Description,
			PricePerKg:    rec.PricePerKg,
			ImageURL:      rec.ImageURL,
			StockQuantity: rec.StockQuantity,
			InStock:       rec.StockQuantity > 0,
			SellerName:    rec.SellerName,
			Category:      rec.Category,
		})
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func readJSON(name string, dest any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Seeder fills empty reference tables.
type Seeder struct {
	client *db.Client
	logg   *logger.Logger
}

// NewSeeder binds a seeder to the record store.
func NewSeeder(client *db.Client, logg *logger.Logger) *Seeder {
	return &Seeder{client: client, logg: logg}
}

// Run inserts countries and products when their tables are empty. Each table
// is filled inside its own transaction, so a partial seed never persists.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var result Result

	countries, err := Countries()
	if err != nil {
		return result, err
	}
	products, err := Products()
	if err != nil {
		return result, err
	}

	result.Countries, err = seedTable(ctx, s.client, &models.Country{}, countries)
	if err != nil {
		return result, fmt.Errorf("seed countries: %w", err)
	}
	result.Products, err = seedTable(ctx, s.client, &models.Product{}, products)
	if err != nil {
		return result, fmt.Errorf("seed products: %w", err)
	}

	if s.logg != nil && (result.Countries > 0 || result.Products > 0) {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"countries": result.Countries,
			"products":  result.Products,
		}), "database seeded")
	}
	return result, nil
}

func seedTable[T any](ctx context.Context, client *db.Client, model any, rows []T) (int, error) {
	inserted := 0
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	return inserted, err
}

// Bootstrapper is the single startup step: schema migrations followed by the
// idempotent seed. The init endpoint re-runs it on demand.
type Bootstrapper struct {
	client *db.Client
	seeder *Seeder
	logg   *logger.Logger
}

// NewBootstrapper wires the migration and seed steps.
func NewBootstrapper(client *db.Client, logg *logger.Logger) *Bootstrapper {
	return &Bootstrapper{client: client, seeder: NewSeeder(client, logg), logg: logg}
}

// Initialize applies pending migrations and seeds empty tables.
func (b *Bootstrapper) Initialize(ctx context.Context) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("bootstrapper not configured")
	}
	if err := migrate.Apply(ctx, b.client); err != nil {
		return err
	}
	_, err := b.seeder.Run(ctx)
	return err
}
