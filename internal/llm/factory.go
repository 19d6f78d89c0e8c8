package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging, retry and timeout middleware.
//
// A missing API key is logged as a warning and yields a provider whose every
// call fails with ErrProviderUnavailable, so the caller can still start.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log zerolog.Logger) (Provider, error) {
	cfg = cfg.WithProviderDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch {
	case cfg.Provider == "mock":
		base = NewMockProvider()
	case cfg.APIKey == "":
		log.Warn().Str("provider", cfg.Provider).Msg("API key not set; generation requests will fail")
		base = &unconfiguredProvider{model: cfg.Model}
	case cfg.Provider == "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case cfg.Provider == "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case cfg.Provider == "openai":
		base, err = NewOpenAIProvider(cfg)
	case cfg.Provider == "openrouter":
		base, err = NewOpenRouterProvider(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	p := WithLogging(base, cfg.Provider, eventRepo, log)
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry, log)
	}
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}

	return p, nil
}

var errNoAPIKey = errors.New("API key not set")

// unconfiguredProvider stands in when no credential is available.
type unconfiguredProvider struct {
	model string
}

func (p *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: errNoAPIKey}
}

func (p *unconfiguredProvider) ModelID() string {
	return p.model
}
