package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestDo_RetriesTransientUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), "download", func() error {
		calls++
		if calls < 3 {
			return apperrors.Classify(errors.New("connection reset"), apperrors.KindTransient)
		}
		return nil
	}, fastConfig(3))

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsAtAttemptCeiling(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), "download", func() error {
		calls++
		return apperrors.Classify(errors.New("timeout"), apperrors.KindTransient)
	}, fastConfig(3))

	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.Equal(t, 3, calls)
}

func TestDo_RetriesUnclassifiedErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), "download", func() error {
		calls++
		if calls == 1 {
			return errors.New("received unexpected status code 400")
		}
		return nil
	}, fastConfig(3))

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_DoesNotRetryPermanentKinds(t *testing.T) {
	for _, kind := range []apperrors.Kind{
		apperrors.KindRateLimited,
		apperrors.KindUnauthorized,
		apperrors.KindNotFound,
	} {
		t.Run(string(kind), func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), logger.NewNop(), "list", func() error {
				calls++
				return apperrors.Classify(errors.New("remote said no"), kind)
			}, fastConfig(3))

			assert.Equal(t, kind, apperrors.KindOf(err))
			assert.Equal(t, 1, calls)
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, logger.NewNop(), "download", func() error {
		calls++
		cancel()
		return apperrors.Classify(errors.New("timeout"), apperrors.KindTransient)
	}, Config{MaxAttempts: 5, InitialInterval: time.Second, MaxInterval: time.Second, Multiplier: 1})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
