// Package ratelimiter provides token bucket rate limiting with pluggable
// storage backends.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes tokens; requests are allowed
// while the balance stays non-negative. The capacity bounds burst size
// while the refill parameters set the sustained rate, which fits upload
// endpoints where clients legitimately send a handful of files at once
// but must not stream them all day.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//
//	// 30 uploads burst, refilling 10 per minute.
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		// Store failure, not a denial.
//	}
//	if !result.Allowed() {
//		// Reject with Retry-After from result.RetryAfter().
//	}
//
// AllowN consumes several tokens at once for weighted operations, Status
// inspects the balance without consuming, and Reset clears a key for
// administrative overrides.
//
// # Overdraft
//
// Denied requests still draw the balance down. A client that keeps
// hammering past its limit digs itself a deeper hole and waits longer
// for the next allowed request; the balance recovers at the refill rate.
//
// # Storage
//
// MemoryStore keeps state in process and removes stale buckets with a
// background sweep (start it via Run in an errgroup, or Start in a
// goroutine). Distributed deployments can supply their own Store
// implementation, for example one backed by Redis; everything above the
// Store interface stays unchanged.
package ratelimiter
