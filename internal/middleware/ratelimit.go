package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// NewRateLimiter returns a middleware enforcing a per-client token-bucket
// rate limit keyed by r.RemoteAddr. Wire it after chi's RealIP middleware so
// the key is the real client address rather than the proxy's.
//
// Limiters are kept for the process lifetime; the key space is bounded by
// the deployment's client population, which is fine for this API's scale.
func NewRateLimiter(rps int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), rps*2)
			limiters[key] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(r.RemoteAddr).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
