// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a process-local token-bucket rate limiter.
//
// Features:
//   - Per-key buckets from golang.org/x/time/rate
//   - Keys from the verified principal ("user:<email>"), else the client IP
//   - Opportunistic eviction of idle buckets to bound memory
//   - Requests that IdempotencyValidator marked as replays are not limited
//
// Notes:
//   - Limits are per process. Several replicas each grant the full budget.
//   - It runs after Authenticate, so a signed-in donor behind a shared NAT
//     gets their own bucket.
//   - It is abuse control, not authorization.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc selects the bucket for a request.
type KeyFunc func(*gin.Context) string

// KeyByPrincipalOrIP keys buckets by "user:<email>" when Authenticate attached
// a principal, otherwise by "ip:<addr>".
func KeyByPrincipalOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if p, ok := PrincipalFrom(c); ok {
			return "user:" + p
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per key.
//
// Buckets are created on first use and kept in a mutex-guarded map. Every
// sweepEvery lookups, buckets idle for idleTTL (10 minutes) are dropped. A
// dropped key starts again with a full bucket.
//
// It is safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn KeyFunc

	mu      sync.Mutex
	buckets map[string]*bucket
	idleTTL time.Duration
	sweepN  uint64
	now     func() time.Time
}

// sweepEvery is the number of lookups between idle-bucket sweeps.
const sweepEvery = 5000

// NewRateLimiter returns a limiter keyed by keyFn.
//
//   - rps:   tokens added per second; 0 refills nothing, so each key gets
//     only its initial burst.
//   - burst: bucket size; values < 1 become 1.
//   - keyFn: maps a request to its bucket, usually KeyByPrincipalOrIP().
//
// Install it with Handler().
func NewRateLimiter(rps float64, burst int, keyFn KeyFunc) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// limiterFor returns the bucket for key, sweeping idle buckets first every
// sweepEvery calls so a stale bucket is replaced rather than refreshed.
func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.sweepN++; rl.sweepN >= sweepEvery {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.sweepN = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Len returns the number of live buckets.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// IsRateBypass reports whether the request was marked as an idempotent replay.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}

// Handler enforces the limit.
//
// Behavior:
//   - replays (IsRateBypass) pass without consuming a token
//   - a request that finds a token passes
//   - otherwise the chain aborts with 429 too_many_requests and a
//     Retry-After of ceil(1/rps) seconds, at least 1
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}
		lim := rl.limiterFor(rl.keyFn(c))
		if lim.Allow() {
			c.Next()
			return
		}
		retry := 1
		if rl.rps > 0 {
			if s := int(1/float64(rl.rps) + 0.999); s > retry {
				retry = s
			}
		}
		c.Header("Retry-After", strconv.Itoa(retry))
		abortJSON(c, http.StatusTooManyRequests, "too_many_requests", "rate limit exceeded")
	}
}
