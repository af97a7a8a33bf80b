package observability

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"nlcalc/internal/handlers"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter allows requestsPerSecond per client with the given burst.
// A non-positive rate disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{limiters: make(map[string]*rate.Limiter)}
	rl.SetLimit(requestsPerSecond, burst)
	return rl
}

// SetLimit changes the limit for new and existing clients.
func (rl *RateLimiter) SetLimit(requestsPerSecond float64, burst int) {
	if burst < 1 {
		burst = 1
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.rate = rate.Limit(requestsPerSecond)
	rl.burst = burst
	for _, l := range rl.limiters {
		l.SetLimit(rl.rate)
		l.SetBurst(rl.burst)
	}
}

// limiter returns the client's bucket, or nil when limiting is off.
func (rl *RateLimiter) limiter(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.rate <= 0 {
		return nil
	}

	l, ok := rl.limiters[clientID]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[clientID] = l
	}
	return l
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. Untraced paths (health, metrics) are never limited.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shouldTraceRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		id := clientID(r)
		l := rl.limiter(id)
		if l != nil && !l.Allow() {
			reservation := l.Reserve()
			retryAfter := reservation.Delay()
			reservation.Cancel()

			LoggerWithTrace(r.Context()).Warn("rate limit exceeded",
				zap.String("client", id),
				zap.String("path", r.URL.Path),
				zap.String("request_id", RequestIDFromContext(r.Context())),
			)

			secs := int(retryAfter.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			handlers.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}
