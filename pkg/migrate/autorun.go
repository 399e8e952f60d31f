package migrate

import (
	"context"
	"fmt"

	"github.com/kuhabites/kuha-web/pkg/config"
	"github.com/kuhabites/kuha-web/pkg/db"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// MaybeRun applies pending migrations at startup when auto-migrate is enabled.
// The prefs table must exist before the API serves, so this is not limited to dev.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate || client == nil {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Driver()})
	logg.Info(ctx, "running goose migrations")

	if err := Run(ctx, sqlDB, client.Driver(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
