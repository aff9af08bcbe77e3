package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the hint model.
type Config struct {
	Provider string `env:"LEVELUP_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration `env:"LEVELUP_LLM_TIMEOUT" envDefault:"30s"`
}

type AnthropicConfig struct {
	APIKey string `env:"LEVELUP_ANTHROPIC_API_KEY"`
	Model  string `env:"LEVELUP_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"LEVELUP_OPENAI_API_KEY"`
	Model   string `env:"LEVELUP_OPENAI_MODEL"    envDefault:"gpt-4o-mini"`
	BaseURL string `env:"LEVELUP_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"LEVELUP_GEMINI_API_KEY"`
	Model  string `env:"LEVELUP_GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"LEVELUP_OPENROUTER_API_KEY"`
	Model   string `env:"LEVELUP_OPENROUTER_MODEL"    envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"LEVELUP_OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// RetryConfig controls exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int           `env:"LEVELUP_LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"LEVELUP_LLM_RETRY_WAIT"     envDefault:"1s"`
	MaxWait     time.Duration `env:"LEVELUP_LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"LEVELUP_LLM_RETRY_FACTOR"   envDefault:"2"`
}

// LoadConfig reads Config from LEVELUP_* variables. When no provider is
// named it falls back to DiscoverConfig; ok is false if neither yields one.
func LoadConfig() (cfg Config, ok bool, err error) {
	if err := env.Parse(&cfg); err != nil {
		return Config{}, false, fmt.Errorf("parse LLM env: %w", err)
	}
	if cfg.Provider != "" {
		return cfg, true, nil
	}
	if discovered, found := discover(cfg); found {
		return discovered, true, nil
	}
	return cfg, false, nil
}

// DefaultConfig returns the envDefault values with no provider selected.
func DefaultConfig() Config {
	var cfg Config
	// Parsing an empty environment only applies defaults.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// DiscoverConfig picks a provider from the vendors' own API key variables,
// in the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	return discover(DefaultConfig())
}

func discover(cfg Config) (Config, bool) {
	candidates := []struct {
		envVar   string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.envVar); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case ProviderAnthropic:
		key, envVar = c.Anthropic.APIKey, "LEVELUP_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envVar = c.OpenAI.APIKey, "LEVELUP_OPENAI_API_KEY"
	case ProviderGemini:
		key, envVar = c.Gemini.APIKey, "LEVELUP_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envVar = c.OpenRouter.APIKey, "LEVELUP_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
