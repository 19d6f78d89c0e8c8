package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// RetryProvider re-issues calls that failed on the way to the provider.
// Responses that arrived but did not match the schema are returned as-is.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    zerolog.Logger
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, log zerolog.Logger) Provider {
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)

	var err error
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == attempts || !retryable(err) {
			return nil, err
		}

		wait := r.delay(attempt, err)
		r.log.Warn().
			Err(err).
			Str("purpose", PurposeFrom(ctx)).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("llm call failed, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, errNoAPIKey) {
		return false
	}

	var invalid *ErrInvalidResponse
	var truncated *ErrMaxTokensExceeded
	return !errors.As(err, &invalid) && !errors.As(err, &truncated)
}

// delay is the wait before the attempt following attempt n (1-based).
// A rate limit's RetryAfter wins over the computed backoff.
func (r *RetryProvider) delay(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(n-1)),
		float64(r.config.MaxWait),
	)
	// ±20% jitter
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(wait, 0))
}
