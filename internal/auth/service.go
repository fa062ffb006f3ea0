package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/internal/users"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "Invalid email or password"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	Me(ctx context.Context, userID int64) (*users.UserDTO, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*users.UserDTO, error)
	Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id int64, dto users.UpdateUserDTO) (*models.User, error)
}

type countryChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// ServiceParams bundles the dependencies required to build an auth service.
// Revoker is optional; without it logout only clears the cookie.
type ServiceParams struct {
	UserRepo  userRepository
	Countries countryChecker
	Hasher    passwordHasher
	Revoker   tokenRevoker
	JWTConfig config.JWTConfig
	Now       func() time.Time
}

type service struct {
	users     userRepository
	countries countryChecker
	hasher    passwordHasher
	revoker   tokenRevoker
	jwtCfg    config.JWTConfig
	now       func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Countries == nil {
		return nil, fmt.Errorf("country checker is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:     params.UserRepo,
		countries: params.Countries,
		hasher:    params.Hasher,
		revoker:   params.Revoker,
		jwtCfg:    params.JWTConfig,
		now:       now,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if req.missingField() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "All fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Passwords do not match")
	}
	if len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Password must be at least 8 characters")
	}

	ok, err := s.countries.Exists(ctx, req.CountryID.Value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid country")
	}

	email := users.NormalizeEmail(req.Email)
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Mobile:       req.Mobile,
		CountryID:    req.CountryID.Value,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return s.issue(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email and password are required")
	}
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *service) Me(ctx context.Context, userID int64) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*users.UserDTO, error) {
	update := req.toUpdate()
	if update.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No fields to update")
	}
	for _, field := range []*string{update.FirstName, update.LastName, update.Mobile} {
		if field != nil && strings.TrimSpace(*field) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Fields cannot be blank")
		}
	}
	if update.CountryID != nil {
		ok, err := s.countries.Exists(ctx, *update.CountryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid country")
		}
	}

	user, err := s.users.Update(ctx, userID, update)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}
	return users.FromModel(user), nil
}

// Logout revokes the token id when a revoker is configured.
func (s *service) Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error {
	if s.revoker == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke token")
	}
	return nil
}

// authenticate returns the same error for an unknown email and a wrong password.
func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) issue(user *models.User) (*Session, error) {
	now := s.now().UTC()
	jti := uuid.NewString()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{
		User:      users.FromModel(user),
		Token:     token,
		TokenID:   jti,
		ExpiresAt: now.Add(s.jwtCfg.TTL()),
	}, nil
}
