package llm

import (
	"fmt"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	// APIKey is the credential for the selected provider. An empty key does
	// not stop construction; calls fail with ErrProviderUnavailable instead.
	APIKey string

	// Model serves structured generation (plan, analysis, flashcards, quiz).
	Model string

	// ChatModel serves the tutoring conversation.
	ChatModel string

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string

	Retry RetryConfig

	// Timeout bounds a single request including retries. Zero means none.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 or less disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// providerDefaults holds the default models for each provider.
var providerDefaults = map[string]struct{ model, chat string }{
	"gemini":     {"gemini-pro", "gemini-flash"},
	"anthropic":  {"claude-sonnet", "claude-haiku"},
	"openai":     {"gpt-4o", "gpt-4o-mini"},
	"openrouter": {"google/gemini-2.5-pro", "google/gemini-2.5-flash"},
	"mock":       {"mock", "mock"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "gemini",
		Model:     "gemini-pro",
		ChatModel: "gemini-flash",
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// WithProviderDefaults fills empty model names with the defaults of the
// configured provider.
func (c Config) WithProviderDefaults() Config {
	d, ok := providerDefaults[c.Provider]
	if !ok {
		return c
	}
	if c.Model == "" {
		c.Model = d.model
	}
	if c.ChatModel == "" {
		c.ChatModel = d.chat
	}
	return c
}

// Validate checks that the provider is known and the numeric settings are sane.
// A missing API key is not a validation error.
func (c Config) Validate() error {
	if _, ok := providerDefaults[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry attempts must be >= 0, got %d", c.Retry.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	return nil
}
