package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"inotebook-server/pkg/response"

	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	limiterCacheSize = 10000
	limiterIdleTTL   = 5 * time.Minute
)

// RateLimiter hands out one token bucket per client IP. Idle buckets expire
// from the LRU so the map stays bounded.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   *expirable.LRU[string, *rate.Limiter]
	rate       rate.Limit
	burst      int
	trustProxy bool
}

// NewRateLimiter allows requestsPerMinute per client. Forwarding headers are
// only used to identify the client when trustProxy is set.
func NewRateLimiter(requestsPerMinute int, trustProxy bool) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiters:   expirable.NewLRU[string, *rate.Limiter](limiterCacheSize, nil, limiterIdleTTL),
		rate:       rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:      burst,
		trustProxy: trustProxy,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}

func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, limiter.trustProxy)
			if !limiter.Allow(ip) {
				log.WithFields(log.Fields{"ip": ip, "path": r.URL.Path}).Warn("rate limit exceeded")
				w.Header().Set("Retry-After", "60")
				response.TooManyRequests(w, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			return strings.TrimSpace(parts[0])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
