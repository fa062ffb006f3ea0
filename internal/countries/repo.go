package countries

import (
	"context"
	"strings"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the country reference table.
type Repository struct {
	repo.Base
}

// NewRepository constructs a countries repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindAll lists every country ordered by name.
func (r *Repository) FindAll(ctx context.Context) ([]models.Country, error) {
	var rows []models.Country
	if err := r.DB(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a country by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Country, error) {
	var country models.Country
	if err := r.DB(ctx).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// FindByCode loads a country by its ISO code, ignoring case.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	if err := r.DB(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}
