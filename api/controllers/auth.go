package controllers

import (
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	"github.com/angelmondragon/veggieshop-backend/api/responses"
	"github.com/angelmondragon/veggieshop-backend/api/validators"
	authsvc "github.com/angelmondragon/veggieshop-backend/internal/auth"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

// AuthRegister creates an account and signs the new user in.
func AuthRegister(svc authsvc.Service, cookie pkgAuth.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Register(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetTokenCookie(w, cookie, session.Token)
		responses.WriteMessage(w, http.StatusCreated, "Registration successful", session.RegisterResponse())
	}
}

// AuthLogin verifies credentials and sets the auth cookie.
func AuthLogin(svc authsvc.Service, cookie pkgAuth.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetTokenCookie(w, cookie, session.Token)
		responses.WriteMessage(w, http.StatusOK, "Login successful", session.LoginResponse())
	}
}

// AuthLogout clears the cookie. A failed revocation is logged and does not
// fail the request.
func AuthLogout(svc authsvc.Service, cookie pkgAuth.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc != nil {
			if err := svc.Logout(r.Context(), middleware.ClaimsFromContext(r.Context())); err != nil && logg != nil {
				logg.Error(r.Context(), "auth.logout.revoke_failed", err)
			}
		}
		pkgAuth.ClearTokenCookie(w, cookie)
		responses.WriteMessage(w, http.StatusOK, "Logout successful", nil)
	}
}

// AuthMe returns the caller's profile.
func AuthMe(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Not authenticated"))
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthUpdateProfile applies a partial profile update for the caller.
func AuthUpdateProfile(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Not authenticated"))
			return
		}

		var req authsvc.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Profile updated", user)
	}
}
