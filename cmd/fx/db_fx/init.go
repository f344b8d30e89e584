package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sallyo/internal/config"
	"sallyo/internal/infra"
	"sallyo/internal/repositories"
)

var Module = fx.Provide(
	provideDB, providePreferencesRepo)

func provideDB(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.ClosePostgresql(db, logger)
		},
	})
	return db, nil
}

func providePreferencesRepo(db *gorm.DB) repositories.PreferencesRepository {
	return repositories.NewPreferencesRepository(db)
}
