package auth

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const minIdleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key. Buckets idle for longer
// than a full refill are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per key with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	idle := minIdleTTL
	if perMinute > 0 {
		if refill := time.Duration(burst) * time.Minute / time.Duration(perMinute); refill > idle {
			idle = refill
		}
	}
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		idleTTL: idle,
		now:     time.Now,
	}
	rl.lastSweep = rl.now()
	return rl
}

// Allow reports whether a request for key may proceed now. When it may not,
// the returned duration is how long the client should wait.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	lim, now := rl.limiter(key)
	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Minute
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) limiter(key string) (*rate.Limiter, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim, now
}

// RateLimit throttles requests per API key, or per peer address for anonymous
// callers. A nil limiter disables throttling.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientHost(r)
			if actor, ok := ActorFromContext(r.Context()); ok && actor.KeyPrefix != "" {
				key = "key:" + actor.KeyPrefix
			}
			allowed, retryAfter := rl.Allow(key)
			if !allowed {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				writeAuthError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", correlationID(r), true)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
