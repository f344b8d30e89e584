package brief_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"sallyo/internal/config"
	"sallyo/internal/repositories"
	"sallyo/internal/services"
	"sallyo/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextClient,
	ProvideCompletionHandler)

// ProvideTextClient picks the language model behind the search brief.
// An empty BRIEF_PROVIDER yields a nil client and template briefs.
func ProvideTextClient(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.TextClientInterface, error) {
	provider := strings.ToLower(cfg.BriefProvider)

	switch provider {
	case "":
		logger.Info("no brief provider configured, using template briefs")
		return nil, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		logger.Info("initializing brief client", zap.String("provider", provider), zap.String("model", cfg.OpenAIModel))
		return utils.NewOpenAITextClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		logger.Info("initializing brief client", zap.String("provider", provider), zap.String("model", cfg.GeminiModel))
		client, err := utils.NewGeminiTextClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.StopHook(client.Close))
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported brief provider: %s. Use 'openai' or 'gemini'", cfg.BriefProvider)
	}
}

func ProvideCompletionHandler(
	cfg config.Config,
	client utils.TextClientInterface,
	prefsRepo repositories.PreferencesRepository,
	logger *zap.Logger,
) services.CompletionHandler {
	return services.NewSearchBriefService(client, prefsRepo, cfg.BriefTimeout, logger)
}
