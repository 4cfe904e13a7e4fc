package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config selects and configures the model provider.
type Config struct {
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including all of its retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible gateways
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // defaults to https://openrouter.ai/api/v1
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini Flash, the model the mock-test app was
// built around.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv reads TOPPERS_* variables over the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "TOPPERS_LLM_PROVIDER")

	setString(&cfg.Gemini.APIKey, "TOPPERS_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "TOPPERS_GEMINI_MODEL")

	setString(&cfg.OpenAI.APIKey, "TOPPERS_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "TOPPERS_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "TOPPERS_OPENAI_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "TOPPERS_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "TOPPERS_OPENROUTER_MODEL")

	setString(&cfg.Anthropic.APIKey, "TOPPERS_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "TOPPERS_ANTHROPIC_MODEL")

	if v := os.Getenv("TOPPERS_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOPPERS_LLM_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// LoadConfig reads TOPPERS_* variables and, when no provider key was set
// explicitly, falls back to the vendors' standard key variables.
func LoadConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	if os.Getenv("TOPPERS_LLM_PROVIDER") != "" || cfg.Validate() == nil {
		return cfg, nil
	}
	if found, ok := DiscoverConfig(); ok {
		found.Timeout = cfg.Timeout
		return found, nil
	}
	return cfg, nil
}

// DiscoverConfig checks vendor key variables in the order
// Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = ProviderGemini
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ErrMockProvider rejects the mock vendor in configuration. MockProvider
// has no canned answers of its own; tests inject one directly.
var ErrMockProvider = errors.New(`the "mock" provider is for tests only; set TOPPERS_LLM_PROVIDER to gemini, openai, openrouter or anthropic`)

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "TOPPERS_GEMINI_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "TOPPERS_OPENAI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "TOPPERS_OPENROUTER_API_KEY"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "TOPPERS_ANTHROPIC_API_KEY"
	case ProviderMock:
		return ErrMockProvider
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
