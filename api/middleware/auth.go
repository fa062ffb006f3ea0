package middleware

import (
	"errors"
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/responses"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/auth/session"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

var errTokenRevoked = errors.New("token revoked")

// AuthOptions configures token verification. Revocations is optional.
type AuthOptions struct {
	JWT         config.JWTConfig
	CookieName  string
	Revocations session.RevocationChecker
}

// OptionalAuth verifies the request token when present and stores the tagged
// result on the context without rejecting the request.
func OptionalAuth(opts AuthOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := resolve(r, opts)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			ctx := WithAuthResult(r.Context(), result)
			if result.Status == pkgAuth.StatusAuthenticated && logg != nil {
				ctx = logg.WithUserID(ctx, result.Claims.UserID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth verifies the request token and rejects anything but an authenticated
// result with 401.
func Auth(opts AuthOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return OptionalAuth(opts, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := AuthResultFromContext(r.Context())
			switch result.Status {
			case pkgAuth.StatusAuthenticated:
				next.ServeHTTP(w, r)
			case pkgAuth.StatusRejected:
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, result.Err, "Not authenticated"))
			default:
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Not authenticated"))
			}
		}))
	}
}

// resolve only errors when the revocation store cannot be reached.
func resolve(r *http.Request, opts AuthOptions) (pkgAuth.Result, error) {
	result := pkgAuth.Verify(opts.JWT, pkgAuth.TokenFromRequest(r, opts.CookieName))
	if result.Status != pkgAuth.StatusAuthenticated || opts.Revocations == nil || result.Claims.ID == "" {
		return result, nil
	}
	revoked, err := opts.Revocations.IsRevoked(r.Context(), result.Claims.ID)
	if err != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	}
	if revoked {
		return pkgAuth.Rejected(errTokenRevoked), nil
	}
	return result, nil
}
