package llm

import (
	"fmt"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
)

// NewProvider picks the provider named in the configuration.
func NewProvider(cfg *config.ModelConfig, logger primary.Logger) (secondary.ModelProvider, error) {
	switch cfg.Provider {
	case config.ModelProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("MODEL_API_KEY is required for the %s provider", cfg.Provider)
		}
		return NewOpenAIProvider(cfg, logger), nil
	case config.ModelProviderCommand:
		if cfg.Command == "" {
			return nil, fmt.Errorf("MODEL_COMMAND is required for the %s provider", cfg.Provider)
		}
		return NewCommandProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
