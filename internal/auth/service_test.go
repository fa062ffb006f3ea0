package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/countries"
	"github.com/angelmondragon/veggieshop-backend/internal/testdb"
	"github.com/angelmondragon/veggieshop-backend/internal/users"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/security"
	"github.com/angelmondragon/veggieshop-backend/pkg/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "veggie-shop", ExpirationMinutes: 10080}

type fakeRevoker struct {
	revoked map[string]time.Time
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, id string, exp time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[id] = exp
	return nil
}

func newTestService(t *testing.T, revoker tokenRevoker) Service {
	t.Helper()
	client := testdb.OpenSeeded(t)
	countrySvc, err := countries.NewService(countries.NewRepository(client.DB()))
	require.NoError(t, err)

	params := ServiceParams{
		UserRepo:  users.NewRepository(client.DB()),
		Countries: countrySvc,
		Hasher: security.NewHasher(config.PasswordConfig{
			Algorithm:        config.PasswordAlgorithmArgon2id,
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		}),
		JWTConfig: testJWT,
	}
	if revoker != nil {
		params.Revoker = revoker
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Grower",
		Email:           "  Ada@Example.com ",
		Mobile:          "5550100",
		CountryID:       types.FlexInt64{Set: true, Value: 1},
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	session, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, RegisterResponse{UserID: session.User.ID, Email: "ada@example.com"}, session.RegisterResponse())

	claims, err := pkgAuth.ParseAccessToken(testJWT, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, session.TokenID, claims.ID)

	login, err := svc.Login(ctx, LoginRequest{Email: "ADA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, LoginResponse{UserID: session.User.ID, Email: "ada@example.com", FirstName: "Ada", LastName: "Grower"}, login.LoginResponse())
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	cases := map[string]struct {
		mutate  func(*RegisterRequest)
		message string
	}{
		"missing field":   {func(r *RegisterRequest) { r.Mobile = " " }, "All fields are required"},
		"missing country": {func(r *RegisterRequest) { r.CountryID = types.FlexInt64{} }, "All fields are required"},
		"mismatch":        {func(r *RegisterRequest) { r.ConfirmPassword = "password124" }, "Passwords do not match"},
		"short":           {func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, "Password must be at least 8 characters"},
		"bad country":     {func(r *RegisterRequest) { r.CountryID = types.FlexInt64{Set: true, Value: 9999} }, "Invalid country"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRegistration()
			tc.mutate(&req)
			_, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
			assert.Equal(t, tc.message, pkgerrors.As(err).Message())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	again := validRegistration()
	again.Email = "ADA@EXAMPLE.COM"
	_, err = svc.Register(ctx, again)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, "Email already registered", pkgerrors.As(err).Message())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "nope-nope"})
	_, unknownUser := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})

	for _, err := range []error{wrongPassword, unknownUser} {
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
		assert.Equal(t, "Invalid email or password", pkgerrors.As(err).Message())
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "", Password: "x"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestMeAndUpdateProfile(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	session, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	me, err := svc.Me(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.FirstName)
	assert.Equal(t, int64(1), me.CountryID)

	first := " Augusta "
	updated, err := svc.UpdateProfile(ctx, session.User.ID, UpdateProfileRequest{
		FirstName: &first,
		CountryID: types.FlexInt64{Set: true, Value: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Grower", updated.LastName)
	assert.Equal(t, int64(2), updated.CountryID)

	_, err = svc.UpdateProfile(ctx, session.User.ID, UpdateProfileRequest{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	blank := "  "
	_, err = svc.UpdateProfile(ctx, session.User.ID, UpdateProfileRequest{LastName: &blank})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.Me(ctx, 987654)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestLogoutRevokesWhenConfigured(t *testing.T) {
	revoker := &fakeRevoker{revoked: map[string]time.Time{}}
	svc := newTestService(t, revoker)
	exp := time.Now().Add(time.Hour)
	claims := &pkgAuth.AccessTokenClaims{UserID: 1}
	claims.ID = "jti-9"
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	require.NoError(t, svc.Logout(context.Background(), claims))
	assert.Contains(t, revoker.revoked, "jti-9")

	require.NoError(t, svc.Logout(context.Background(), nil))

	revoker.err = errors.New("redis down")
	err := svc.Logout(context.Background(), claims)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestLogoutWithoutRevokerIsNoop(t *testing.T) {
	svc := newTestService(t, nil)
	claims := &pkgAuth.AccessTokenClaims{UserID: 1}
	claims.ID = "jti"
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	assert.NoError(t, svc.Logout(context.Background(), claims))
}
