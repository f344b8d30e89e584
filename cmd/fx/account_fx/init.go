package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sallyo/internal/config"
	"sallyo/internal/repositories"
	"sallyo/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideGoogleVerifier)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideGoogleVerifier(cfg config.Config, logger *zap.Logger) services.GoogleVerifier {
	if cfg.GoogleClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID is not set, Google sign-in will be rejected")
	}
	return services.NewGoogleVerifier(cfg.GoogleClientID)
}

func provideAccountService(
	cfg config.Config,
	accountRepo repositories.AccountRepository,
	prefsRepo repositories.PreferencesRepository,
	google services.GoogleVerifier,
	logger *zap.Logger,
) services.AccountServiceInterface {
	tokens := services.TokenConfig{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
	return services.NewAccountService(accountRepo, prefsRepo, google, tokens, logger)
}
