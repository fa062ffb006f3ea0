package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
)

type contextKey string

const ctxAuthResult contextKey = "auth_result"

// AuthResultFromContext returns the verification outcome stored by Auth or
// OptionalAuth. Requests that never passed through either are anonymous.
func AuthResultFromContext(ctx context.Context) pkgAuth.Result {
	if ctx == nil {
		return pkgAuth.Anonymous()
	}
	if v, ok := ctx.Value(ctxAuthResult).(pkgAuth.Result); ok {
		return v
	}
	return pkgAuth.Anonymous()
}

// UserIDFromContext returns the authenticated user id, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// ClaimsFromContext returns the verified token claims, or nil.
func ClaimsFromContext(ctx context.Context) *pkgAuth.AccessTokenClaims {
	result := AuthResultFromContext(ctx)
	if result.Status != pkgAuth.StatusAuthenticated {
		return nil
	}
	return result.Claims
}

// WithAuthResult stores result on the context.
func WithAuthResult(ctx context.Context, result pkgAuth.Result) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAuthResult, result)
}
