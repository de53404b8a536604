package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientIdleTTL is how long an idle client's bucket is kept.
const clientIdleTTL = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// Every conversion launches a browser, so each client gets its own
// limiter with a burst of 1.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientBucket
	rps      float64
	now      func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client. A non-positive rps disables limiting.
func NewClientLimiter(rps float64) *ClientLimiter {
	return &ClientLimiter{
		limiters: make(map[string]*clientBucket),
		rps:      rps,
		now:      time.Now,
	}
}

// Allow reports whether the client identified by key may start a request
// now. It never blocks.
func (l *ClientLimiter) Allow(key string) bool {
	if l == nil || l.rps <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	b, ok := l.limiters[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), 1)}
		l.limiters[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// prune drops buckets that have been idle long enough to be full again.
func (l *ClientLimiter) prune(now time.Time) {
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) > clientIdleTTL {
			delete(l.limiters, key)
		}
	}
}

// clientKey identifies the caller by remote IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
