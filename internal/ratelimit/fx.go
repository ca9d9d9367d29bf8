package ratelimit

import (
	"time"

	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg *config.Config) *TokenBucket {
	return NewTokenBucket(cfg.Sync.RequestsPerMinute, time.Minute, cfg.Sync.Burst)
}

var Module = fx.Module("ratelimit",
	fx.Provide(
		NewFromConfig,
		fx.Annotate(
			func(l *TokenBucket) Limiter {
				return l
			},
			fx.As(new(Limiter)),
		),
	),
)
