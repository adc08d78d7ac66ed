package migrate

import (
	"context"
	"fmt"

	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/logger"
)

// MaybeRunDev applies the embedded migrations on boot when running in dev
// against Postgres with CASAMAIS_AUTO_MIGRATE enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if cfg.DB.Driver != "" && cfg.DB.Driver != db.DriverPostgres {
		logg.Warn(ctx, "auto-migrate skipped: migrations target postgres")
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	applied, err := Run(ctx, sqlDB, "", "up")
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logg.Info(logg.WithField(ctx, "applied", len(applied)), "migrations.autorun.complete")
	return nil
}
