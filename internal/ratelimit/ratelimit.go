package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out permits for remote requests. One instance is shared by
// every target of an invocation because the remote limits per account/IP.
type Limiter interface {
	// Wait blocks until a permit is available or ctx is done.
	Wait(ctx context.Context) error
	// Throttle lowers the rate after the remote signalled a hard throttle.
	Throttle()
	// Reset restores the configured rate at the start of an invocation.
	Reset()
}

// TokenBucket is a Limiter backed by golang.org/x/time/rate.
type TokenBucket struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	initial rate.Limit
	floor   rate.Limit // Throttle never goes below this
}

// NewTokenBucket creates a limiter allowing `requests` permits every `per`
// with bursts of up to `burst`.
// Example: NewTokenBucket(20, time.Minute, 3) -> one permit every 3 seconds, burst of 3
func NewTokenBucket(requests int, per time.Duration, burst int) *TokenBucket {
	r := rate.Every(per / time.Duration(requests))
	return &TokenBucket{
		limiter: rate.NewLimiter(r, burst),
		initial: r,
		floor:   r / 8,
	}
}

func (l *TokenBucket) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Throttle halves the current rate, bounded by an eighth of the initial one.
func (l *TokenBucket) Throttle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.limiter.Limit() / 2
	if next < l.floor {
		next = l.floor
	}
	l.limiter.SetLimit(next)
}

func (l *TokenBucket) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiter.SetLimit(l.initial)
}

func (l *TokenBucket) Limit() rate.Limit {
	return l.limiter.Limit()
}

var _ Limiter = (*TokenBucket)(nil)

// Unlimited never blocks. Useful for tests and one-off commands.
type Unlimited struct{}

func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
func (Unlimited) Throttle()                      {}
func (Unlimited) Reset()                         {}

var _ Limiter = Unlimited{}
