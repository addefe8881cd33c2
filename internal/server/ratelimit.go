package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleClientAge is how long an idle client's limiter is kept before the
// sweep drops it.
const staleClientAge = 30 * time.Minute

// clientLimiter pairs a token bucket with its last use for cleanup.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter enforces a shared request budget per client address: the
// window's requests are spread across the window as the refill rate, with
// the full budget available as burst.
type rateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	lastSwep time.Time
}

// newRateLimiter creates a limiter allowing requests per window for each
// client address. Non-positive inputs disable limiting.
func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	if requests <= 0 || window <= 0 {
		return &rateLimiter{}
	}
	return &rateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		lastSwep: time.Now(),
	}
}

// Allow reports whether the client may proceed, consuming one token.
func (rl *rateLimiter) Allow(client string) bool {
	if rl.clients == nil {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	cl, ok := rl.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[client] = cl
	}
	cl.lastSeen = now

	if now.Sub(rl.lastSwep) > staleClientAge {
		rl.sweep(now)
	}

	return cl.limiter.Allow()
}

// sweep drops limiters for clients idle past staleClientAge. Must be called
// with mu held.
func (rl *rateLimiter) sweep(now time.Time) {
	for client, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > staleClientAge {
			delete(rl.clients, client)
		}
	}
	rl.lastSwep = now
}
