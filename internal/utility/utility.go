package utility

import (
	"net"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// NewIPExtractor resolves the client address from X-Forwarded-For, walking
// the header from the right and believing only hops that arrive from loopback
// or one of the trusted ranges. Without trusted ranges a remote caller cannot
// choose its own address by sending the header.
func NewIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	opts := []echo.TrustOption{
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trusted {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// GetRealIP is a helper function to get the user's real IP address.
// Proxy headers only count when the echo instance has an IP extractor that
// trusts the peer (see NewIPExtractor).
func GetRealIP(c echo.Context) string {
	return c.RealIP()
}

// RequestLogger returns the request-scoped logger set by the logger
// middleware, or the global logger if there is none.
func RequestLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get("logger").(*zerolog.Logger); ok && l != nil {
		return l
	}
	l := log.Logger
	return &l
}

// RateLimiter hands out one token bucket per client IP. Buckets live in a
// bounded LRU so a flood of distinct addresses cannot grow memory without limit.
type RateLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows rps requests per second with the given burst, tracking
// at most maxClients addresses. rps <= 0 disables limiting.
func NewRateLimiter(rps float64, burst, maxClients int) (*RateLimiter, error) {
	if maxClients < 1 {
		maxClients = 1
	}
	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, err
	}

	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{clients: cache, limit: limit, burst: burst}, nil
}

// Allow reports whether ip may make a request now.
func (r *RateLimiter) Allow(ip string) bool {
	return r.allowAt(ip, time.Now())
}

func (r *RateLimiter) allowAt(ip string, now time.Time) bool {
	r.mu.Lock()
	l, ok := r.clients.Get(ip)
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.clients.Add(ip, l)
	}
	r.mu.Unlock()

	return l.AllowN(now, 1)
}

// Tracked returns how many client addresses currently hold a bucket.
func (r *RateLimiter) Tracked() int {
	return r.clients.Len()
}
