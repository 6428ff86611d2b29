package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

// Config bounds a retried operation. Retryable, when set, decides per error
// whether another attempt is worth making; nil retries every error.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	Retryable       func(error) bool
}

// DefaultConfig suits Graph reads: a few quick attempts, never minutes of waiting.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// WithRetryable returns a copy of cfg using fn to classify errors.
func (cfg Config) WithRetryable(fn func(error) bool) Config {
	cfg.Retryable = fn
	return cfg
}

// Permanent marks an error that must not be retried.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs operation until it succeeds, returns a permanent error, is rejected
// by cfg.Retryable, exhausts cfg.MaxRetries or ctx is done.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)

	attempt := 0
	classified := func() error {
		attempt++
		err := operation()
		if err != nil && cfg.Retryable != nil && !cfg.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, t time.Duration) {
		log.Warn(
			"Operation failed, retrying...",
			"operation", operationName,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String(),
		)
	}

	return backoff.RetryNotify(classified, policy, notify)
}
