package auth

import (
	"strings"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/users"
	"github.com/angelmondragon/veggieshop-backend/pkg/types"
)

const minPasswordLength = 8

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName       string          `json:"firstName" validate:"required"`
	LastName        string          `json:"lastName" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Mobile          string          `json:"mobile" validate:"required"`
	CountryID       types.FlexInt64 `json:"countryId"`
	Password        string          `json:"password" validate:"required"`
	ConfirmPassword string          `json:"confirmPassword" validate:"required"`
}

// ValidationMessage maps a failed validation tag to the message shown to the client.
func (RegisterRequest) ValidationMessage(field, tag string) string {
	switch tag {
	case "required":
		return "All fields are required"
	case "email":
		return "Invalid email address"
	}
	return "Invalid registration data"
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) ValidationMessage(field, tag string) string {
	return "Email and password are required"
}

// UpdateProfileRequest is a partial profile update; absent fields are kept.
type UpdateProfileRequest struct {
	FirstName *string         `json:"firstName,omitempty"`
	LastName  *string         `json:"lastName,omitempty"`
	Mobile    *string         `json:"mobile,omitempty"`
	CountryID types.FlexInt64 `json:"countryId"`
}

// Session is the outcome of a successful register or login. Token goes into
// the auth cookie and is not serialized.
type Session struct {
	User      *users.UserDTO
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// RegisterResponse is returned with 201 on sign-up.
type RegisterResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// LoginResponse is returned on sign-in.
type LoginResponse struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Session) RegisterResponse() RegisterResponse {
	return RegisterResponse{UserID: s.User.ID, Email: s.User.Email}
}

func (s *Session) LoginResponse() LoginResponse {
	return LoginResponse{
		UserID:    s.User.ID,
		Email:     s.User.Email,
		FirstName: s.User.FirstName,
		LastName:  s.User.LastName,
	}
}

func (r RegisterRequest) missingField() bool {
	for _, v := range []string{r.FirstName, r.LastName, r.Email, r.Mobile, r.Password} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return !r.CountryID.Set
}

func (r UpdateProfileRequest) toUpdate() users.UpdateUserDTO {
	update := users.UpdateUserDTO{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Mobile:    r.Mobile,
	}
	if r.CountryID.Set {
		id := r.CountryID.Value
		update.CountryID = &id
	}
	return update
}
