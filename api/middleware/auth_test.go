package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[tokenID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "veggie-shop", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: 7,
		Email:  "ada@example.com",
		JTI:    jti,
	})
	require.NoError(t, err)
	return token
}

func protectedHandler(t *testing.T, opts AuthOptions) http.Handler {
	t.Helper()
	return Auth(opts, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(7), UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-1"))
	rec := httptest.NewRecorder()

	protectedHandler(t, AuthOptions{JWT: testJWTConfig(), CookieName: "veggie-auth-token"}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthAcceptsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "veggie-auth-token", Value: mintTestToken(t, "jti-2")})
	rec := httptest.NewRecorder()

	protectedHandler(t, AuthOptions{JWT: testJWTConfig(), CookieName: "veggie-auth-token"}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	opts := AuthOptions{JWT: testJWTConfig(), CookieName: "veggie-auth-token"}

	rec := httptest.NewRecorder()
	protectedHandler(t, opts).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	protectedHandler(t, opts).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	opts := AuthOptions{
		JWT:         testJWTConfig(),
		CookieName:  "veggie-auth-token",
		Revocations: stubRevocations{revoked: map[string]bool{"jti-revoked": true}},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-revoked"))
	rec := httptest.NewRecorder()

	protectedHandler(t, opts).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRevocationStoreFailureIsDependencyError(t *testing.T) {
	opts := AuthOptions{
		JWT:         testJWTConfig(),
		CookieName:  "veggie-auth-token",
		Revocations: stubRevocations{err: errors.New("redis down")},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-3"))
	rec := httptest.NewRecorder()

	protectedHandler(t, opts).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOptionalAuthPassesAnonymousRequests(t *testing.T) {
	var status pkgAuth.Status
	handler := OptionalAuth(AuthOptions{JWT: testJWTConfig()}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status = AuthResultFromContext(r.Context()).Status
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pkgAuth.StatusAnonymous, status)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pkgAuth.StatusRejected, status)
}

func TestContextHelpersDefaultToAnonymous(t *testing.T) {
	assert.Equal(t, int64(0), UserIDFromContext(context.Background()))
	assert.Nil(t, ClaimsFromContext(context.Background()))
	assert.Equal(t, pkgAuth.StatusAnonymous, AuthResultFromContext(context.Background()).Status)
}
