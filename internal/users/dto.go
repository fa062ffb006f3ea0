package users

import (
	"strings"

	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	CountryID int64  `json:"countryId"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	CountryID    int64
	PasswordHash string
}

// UpdateUserDTO carries a partial profile update; nil fields are left alone.
type UpdateUserDTO struct {
	FirstName *string
	LastName  *string
	Mobile    *string
	CountryID *int64
}

// Empty reports whether the update changes nothing.
func (u UpdateUserDTO) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Mobile == nil && u.CountryID == nil
}

func (u UpdateUserDTO) columns() map[string]any {
	out := map[string]any{}
	if u.FirstName != nil {
		out["first_name"] = strings.TrimSpace(*u.FirstName)
	}
	if u.LastName != nil {
		out["last_name"] = strings.TrimSpace(*u.LastName)
	}
	if u.Mobile != nil {
		out["mobile"] = strings.TrimSpace(*u.Mobile)
	}
	if u.CountryID != nil {
		out["country_id"] = *u.CountryID
	}
	return out
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Mobile:    u.Mobile,
		CountryID: u.CountryID,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		FirstName:    strings.TrimSpace(c.FirstName),
		LastName:     strings.TrimSpace(c.LastName),
		Email:        NormalizeEmail(c.Email),
		Mobile:       strings.TrimSpace(c.Mobile),
		CountryID:    c.CountryID,
		PasswordHash: c.PasswordHash,
	}
}
