// Package ratelimit throttles requests per client key with token buckets.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"golang.org/x/time/rate"
)

// idleTTL is how long an unused client bucket is kept.
const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// PerMinute allows n events per minute per key with a burst of n.
// A non-positive n disables limiting.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return &Limiter{limit: rate.Inf, burst: 1, buckets: map[string]*bucket{}, now: time.Now}
	}
	return &Limiter{
		buckets: map[string]*bucket{},
		limit:   rate.Every(time.Minute / time.Duration(n)),
		burst:   n,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed now.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Prune drops buckets idle for longer than idleTTL and returns how many.
func (l *Limiter) Prune() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleTTL)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Middleware limits non-GET requests by key. Rejected requests are served by
// onLimit, or get a plain 429.
func (l *Limiter) Middleware(key func(*http.Request) string, onLimit http.Handler) httpx.Middleware {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || key == nil {
				next.ServeHTTP(w, r)
				return
			}
			if !l.Allow(key(r)) {
				onLimit.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
