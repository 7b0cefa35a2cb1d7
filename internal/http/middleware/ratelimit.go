package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter reports whether a request from a client identity is admitted.
// Implementations prune instants older than their window on every check and
// record the new instant only when the request is admitted.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SlidingWindowLimiter tracks request instants per client over a trailing
// window, entirely in process memory. Counters are not shared between
// instances; deployments running more than one replica should use
// RedisLimiter instead.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewSlidingWindowLimiter creates a limiter admitting at most limit
// requests per client within the trailing window.
func NewSlidingWindowLimiter(window time.Duration, limit int) *SlidingWindowLimiter {
	l := &SlidingWindowLimiter{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
	// Periodically evict idle clients to prevent memory growth.
	go l.cleanup()
	return l
}

// Allow prunes expired instants for key and admits the request iff the
// remaining count is below the limit. Prune, check and record happen under
// one lock, so concurrent requests from the same client cannot race past
// the threshold.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false, nil
	}

	l.hits[key] = append(kept, now)
	return true, nil
}

func (l *SlidingWindowLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := l.now().Add(-l.window)
		for key, hits := range l.hits {
			if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
				delete(l.hits, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit returns an HTTP middleware that rejects requests whose client
// exceeds the limiter with 429 Too Many Requests and the given message.
// Limiter errors fail open: admission control degrading must not take the
// site down. onDenied, when non-nil, is invoked for every rejection.
func RateLimit(limiter Limiter, message string, onDenied func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				ok = true
			}
			if !ok {
				if onDenied != nil {
					onDenied()
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": message,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the requesting client. Prefer X-Real-Ip set by chi's
// RealIP middleware; fall back to the transport address without its port.
func clientKey(r *http.Request) string {
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
