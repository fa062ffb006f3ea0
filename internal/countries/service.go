package countries

import (
	"context"
	"fmt"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
)

// CountryDTO is the public reference shape.
type CountryDTO struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	PhoneCode string `json:"phoneCode"`
}

func toDTO(c models.Country) CountryDTO {
	return CountryDTO{ID: c.ID, Code: c.Code, Name: c.Name, PhoneCode: c.PhoneCode}
}

type repository interface {
	FindAll(ctx context.Context) ([]models.Country, error)
	FindByID(ctx context.Context, id int64) (*models.Country, error)
	FindByCode(ctx context.Context, code string) (*models.Country, error)
}

// Service exposes the country list to handlers and registration.
type Service interface {
	List(ctx context.Context) ([]CountryDTO, error)
	Get(ctx context.Context, code string) (*CountryDTO, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo repository
}

// NewService validates dependencies and builds the country service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("countries repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CountryDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch countries")
	}
	out := make([]CountryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, code string) (*CountryDTO, error) {
	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch country")
	}
	dto := toDTO(*row)
	return &dto, nil
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch country")
	}
	return true, nil
}
