package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

// Apply brings the schema up to date on the given client.
func Apply(ctx context.Context, client *db.Client) error {
	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	if err := Run(ctx, sqlDB, client.Dialect(), "up", nil); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	return nil
}

// MaybeRun executes migrations on startup when the auto-migrate flag is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Dialect()})
	logg.Info(ctx, "running goose migrations")

	if err := Apply(ctx, client); err != nil {
		return err
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
