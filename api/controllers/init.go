package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/responses"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

type initializer interface {
	Initialize(ctx context.Context) error
}

// Init re-runs the idempotent migrate and seed step.
func Init(boot initializer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if boot == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bootstrapper unavailable"))
			return
		}
		if err := boot.Initialize(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to initialize database"))
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Database initialized and seeded successfully", nil)
	}
}
