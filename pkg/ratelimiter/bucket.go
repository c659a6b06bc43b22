package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RateLimiter is the contract consumed by rate limiting middleware.
type RateLimiter interface {
	// Allow consumes a single token for the key.
	Allow(ctx context.Context, key string) (*Result, error)
	// AllowN consumes n tokens for the key.
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Store persists token bucket state. Implementations must be safe for
// concurrent use.
type Store interface {
	// ConsumeTokens refills the bucket according to config, subtracts
	// tokens, and returns the resulting balance. The balance may go
	// negative when the bucket is overdrawn.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	// Reset restores the bucket for key to full capacity.
	Reset(ctx context.Context, key string) error
}

// Config defines token bucket parameters.
type Config struct {
	// Capacity is the maximum number of tokens the bucket holds.
	// It bounds the burst size.
	Capacity int
	// RefillRate is the number of tokens added every RefillInterval.
	RefillRate int
	// RefillInterval is how often RefillRate tokens are added.
	RefillInterval time.Duration
}

// Validate checks that the configuration describes a working bucket.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the outcome of a rate limit check.
type Result struct {
	// Limit is the bucket capacity.
	Limit int
	// Remaining is the token balance after the check. Negative values
	// mean the bucket is overdrawn.
	Remaining int
	// ResetAt is when the next refill lands.
	ResetAt time.Time
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long the client should wait before retrying.
// It returns 0 for allowed results and for reset times already passed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Bucket implements RateLimiter with the token bucket algorithm backed
// by a pluggable Store.
type Bucket struct {
	store  Store
	config Config
}

var _ RateLimiter = (*Bucket)(nil)

// NewBucket creates a token bucket limiter on top of the given store.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow consumes a single token for the key.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for the key. Denied requests still draw the
// balance down, so a client hammering past its limit pushes its own
// recovery further out.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}
	return b.consume(ctx, key, n)
}

// Status reports the current balance for the key without consuming
// tokens.
func (b *Bucket) Status(ctx context.Context, key string) (*Result, error) {
	return b.consume(ctx, key, 0)
}

// Reset restores the bucket for key to full capacity. Intended for
// administrative overrides.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrContextCancelled, err)
	}
	if err := b.store.Reset(ctx, key); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (b *Bucket) consume(ctx context.Context, key string, n int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrContextCancelled, err)
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &Result{
		Limit:     b.config.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
