package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/veggieshop-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "veggie-shop",
		ExpirationMinutes: 7 * 24 * 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 42, Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ann@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(7 * 24 * time.Hour)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.Time)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected error for a token signed with another secret")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationMinutes = 15
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: 1})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenRejectsMissingUser(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected invalid user error")
	}
}

func TestVerifyTagsResult(t *testing.T) {
	cfg := testJWTConfig()

	if got := Verify(cfg, ""); got.Status != StatusAnonymous || got.Claims != nil {
		t.Fatalf("expected anonymous, got %+v", got)
	}
	if got := Verify(cfg, "garbage"); got.Status != StatusRejected || got.Err == nil {
		t.Fatalf("expected rejected, got %+v", got)
	}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 7, Email: "x@y.z"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	got := Verify(cfg, token)
	if got.Status != StatusAuthenticated || got.Claims == nil || got.Claims.UserID != 7 {
		t.Fatalf("expected authenticated, got %+v", got)
	}
	if got.Status.String() != "authenticated" {
		t.Fatalf("unexpected status string %q", got.Status)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	opts := CookieOptions{Name: "veggie-auth-token", Secure: true, MaxAge: 7 * 24 * time.Hour}

	rec := httptest.NewRecorder()
	SetTokenCookie(rec, opts, "tok")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" || c.MaxAge != 604800 {
		t.Fatalf("unexpected cookie attributes %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if got := TokenFromRequest(req, opts.Name); got != "tok" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	bearer := httptest.NewRequest(http.MethodGet, "/", nil)
	bearer.Header.Set("Authorization", "Bearer abc")
	if got := TokenFromRequest(bearer, opts.Name); got != "abc" {
		t.Fatalf("expected bearer token, got %q", got)
	}

	cleared := httptest.NewRecorder()
	ClearTokenCookie(cleared, opts)
	if got := cleared.Result().Cookies()[0]; got.MaxAge >= 0 || got.Value != "" {
		t.Fatalf("expected expired cookie, got %+v", got)
	}
}
