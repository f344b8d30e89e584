package onboarding_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"sallyo/internal/config"
	"sallyo/internal/repositories"
	"sallyo/internal/services"
	mem "sallyo/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(
		provideOnboardingService,
		func(s *services.OnboardingService) services.OnboardingServiceInterface { return s },
		func(s *services.OnboardingService) services.Sweeper { return s },
		provideSessionJanitor,
	),
	fx.Invoke(func(*services.SessionJanitor) {}),
)

func provideOnboardingService(
	cfg config.Config,
	sessions mem.Store[*services.WizardSession],
	prefsRepo repositories.PreferencesRepository,
	completion services.CompletionHandler,
	logger *zap.Logger,
) *services.OnboardingService {
	return services.NewOnboardingService(sessions, prefsRepo, completion, cfg.SessionTTL, logger)
}

func provideSessionJanitor(lc fx.Lifecycle, cfg config.Config, sweeper services.Sweeper, logger *zap.Logger) (*services.SessionJanitor, error) {
	janitor, err := services.NewSessionJanitor(cfg.JanitorSpec, sweeper, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			janitor.Start()
			return nil
		},
		OnStop: janitor.Stop,
	})
	return janitor, nil
}
