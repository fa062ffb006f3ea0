package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/veggieshop-backend/api/responses"
	countrysvc "github.com/angelmondragon/veggieshop-backend/internal/countries"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

func CountryList(svc countrysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		countries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, countries)
	}
}

func CountryGet(svc countrysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, err := svc.Get(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, country)
	}
}
