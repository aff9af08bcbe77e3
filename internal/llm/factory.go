package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller -> retry -> logging -> vendor, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, repo, log), cfg.Retry), nil
}

// NewProviderFromEnv loads Config from the environment and builds a provider.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	cfg, ok, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no LLM provider configured (set LEVELUP_LLM_PROVIDER or a vendor API key)")
	}
	return NewProvider(ctx, cfg, repo, log)
}
