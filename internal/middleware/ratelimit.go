package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (cl *clientLimiter) get(addr string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	c, ok := cl.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter
}

// evictIdle drops clients not seen for clientIdleTTL.
func (cl *clientLimiter) evictIdle() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	evicted := 0
	for addr, c := range cl.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(cl.clients, addr)
			evicted++
		}
	}
	return evicted
}

// janitor evicts idle clients every interval until ctx is done.
func (cl *clientLimiter) janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cl.evictIdle(); n > 0 {
				slog.Debug("rate limiter evicted idle clients", "count", n)
			}
		}
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit limits generation requests per client address to rps with the
// given burst. Rejected requests get 429 with a Retry-After hint. Idle clients
// are evicted in the background until ctx is done.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	cl := newClientLimiter(rps, burst)
	go cl.janitor(ctx, clientIdleTTL)

	retryAfter := strconv.Itoa(int(math.Ceil(1 / math.Max(rps, 0.001))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := clientAddr(r)

			if !cl.get(addr).Allow() {
				slog.Warn("rate limit exceeded", "remote", addr, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
