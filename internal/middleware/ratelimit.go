package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wetee-dao/guildgate/internal/model"
)

// RateLimiter keeps one token bucket per client
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	perMin   int
	burst    int
	idle     time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	PerMinute int           // Sustained requests per minute (default 60)
	Burst     int           // Max burst (default 10)
	Idle      time.Duration // Drop buckets unused for this long (default 10 minutes)
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 60
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.Idle <= 0 {
		cfg.Idle = 10 * time.Minute
	}

	rl := &RateLimiter{
		clients:  make(map[string]*client),
		limit:    rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		perMin:   cfg.PerMinute,
		burst:    cfg.Burst,
		idle:     cfg.Idle,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupIdle(time.Now())
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *RateLimiter) cleanupIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idle {
			delete(rl.clients, key)
		}
	}
}

// Allow consumes a token for key. When denied, retryAfter is how long until
// the next token is available.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, 0, delay
	}

	return true, int(math.Max(0, c.limiter.TokensAt(now))), 0
}

// RateLimit returns a middleware that applies rate limiting per client address
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := limiter.Allow(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.perMin))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))

				model.NewRateLimitError(secs).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
