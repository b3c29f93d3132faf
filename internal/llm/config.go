package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one LLM provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock". Empty disables LLM features.
	Provider string

	APIKey  string
	Model   string // Empty picks the provider default
	BaseURL string // OpenAI-compatible endpoints only

	// Timeout bounds a single call including retries.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var defaultModels = map[string]string{
	"anthropic":  "claude-haiku",
	"openai":     "gpt-4o-mini",
	"gemini":     "gemini-flash",
	"openrouter": "google/gemini-2.0-flash-exp",
	"mock":       "mock",
}

// DefaultConfig returns a disabled Config with standard retry settings.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// DiscoverConfig probes the vendors' standard API key variables in order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, probe := range []struct{ env, provider string }{
		{"GEMINI_API_KEY", "gemini"},
		{"OPENAI_API_KEY", "openai"},
		{"ANTHROPIC_API_KEY", "anthropic"},
		{"OPENROUTER_API_KEY", "openrouter"},
	} {
		if k := os.Getenv(probe.env); k != "" {
			cfg.Provider = probe.provider
			cfg.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider can be constructed.
func (c Config) Validate() error {
	switch c.Provider {
	case "", "mock":
		return nil
	case "anthropic", "openai", "gemini", "openrouter":
		if c.APIKey == "" {
			return fmt.Errorf("MATHDRILL_LLM_API_KEY is required for the %s provider", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
