package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	apperrors "github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
)

type Config struct {
	// MaxAttempts counts the first try, so 3 means at most 2 retries.
	MaxAttempts         int
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:         3,
		InitialInterval:     2 * time.Second,
		MaxInterval:         30 * time.Second,
		Multiplier:          2,
		RandomizationFactor: 0.3,
	}
}

// Do runs operation until it succeeds, returns an error that is not
// retryable per apperrors.IsRetryable, or exhausts cfg.MaxAttempts.
// The last error is returned unchanged.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.RandomizationFactor = cfg.RandomizationFactor
	bo.MaxElapsedTime = 0
	bo.Reset()

	retries := cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	retryable := backoff.WithMaxRetries(bo, uint64(retries))
	retryableWithContext := backoff.WithContext(retryable, ctx)

	attempt := 0
	wrapped := func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}
		if !apperrors.IsRetryable(err) {
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

	err := backoff.RetryNotify(wrapped, retryableWithContext, notify)
	if err != nil && ctx.Err() != nil && apperrors.IsRetryable(err) {
		// Interrupted while waiting for the next attempt.
		return ctx.Err()
	}
	return err
}

// FromConfig builds the retry policy used for remote calls.
func FromConfig(cfg *config.Config) Config {
	rc := DefaultConfig()
	rc.MaxAttempts = cfg.Sync.MaxAttempts
	if cfg.Sync.BackoffInitial > 0 {
		rc.InitialInterval = cfg.Sync.BackoffInitial
	}
	if cfg.Sync.BackoffMax > 0 {
		rc.MaxInterval = cfg.Sync.BackoffMax
	}
	return rc
}
