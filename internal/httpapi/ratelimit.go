package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter rate-limits per client address.
type ClientLimiter struct {
	mu sync.Mutex
	m  map[string]*clientEntry
	r  rate.Limit
	b  int

	maxIdle time.Duration
	now     func() time.Time
}

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

const sweepAbove = 4096

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m:       make(map[string]*clientEntry),
		r:       rate.Limit(reqPerSec),
		b:       burst,
		maxIdle: 10 * time.Minute,
		now:     time.Now,
	}
}

func (cl *ClientLimiter) Allow(key string) bool {
	cl.mu.Lock()
	now := cl.now()
	e, ok := cl.m[key]
	if !ok {
		if len(cl.m) >= sweepAbove {
			cl.sweep(now)
		}
		e = &clientEntry{lim: rate.NewLimiter(cl.r, cl.b)}
		cl.m[key] = e
	}
	e.seen = now
	cl.mu.Unlock()
	return e.lim.AllowN(now, 1)
}

// sweep drops idle clients. Callers hold mu.
func (cl *ClientLimiter) sweep(now time.Time) {
	for k, e := range cl.m {
		if now.Sub(e.seen) > cl.maxIdle {
			delete(cl.m, k)
		}
	}
}

func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
