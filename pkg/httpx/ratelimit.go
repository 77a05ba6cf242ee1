package httpx

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// Limit is a token bucket refilled with Requests tokens per Window, holding
// at most Burst.
type Limit struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
	Burst    int           `env:"BURST"`
}

func (l Limit) rate() rate.Limit {
	if l.Requests <= 0 || l.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

func (l Limit) burst() int {
	if l.Burst > 0 {
		return l.Burst
	}
	return max(l.Requests, 1)
}

// RateLimits holds the per-route-group profiles. Each can be overridden
// from the environment, e.g. RATELIMIT_LOGIN_REQUESTS=5.
type RateLimits struct {
	// Global applies to every request before routing.
	Global Limit `envPrefix:"GLOBAL_"`
	// Login guards the credential check against brute force.
	Login Limit `envPrefix:"LOGIN_"`
	// Intake covers public writes: contact, reports and reviews.
	Intake Limit `envPrefix:"INTAKE_"`
	// Staff covers the admin group, keyed by session and address.
	Staff Limit `envPrefix:"STAFF_"`
	// Account covers signed-in shopping: cart and orders.
	Account Limit `envPrefix:"ACCOUNT_"`
	// Public covers cacheable reads, probes and page view beacons.
	Public Limit `envPrefix:"PUBLIC_"`
}

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Global:  Limit{Requests: 120, Window: time.Minute, Burst: 120},
		Login:   Limit{Requests: 10, Window: time.Minute, Burst: 10},
		Intake:  Limit{Requests: 20, Window: time.Minute, Burst: 20},
		Staff:   Limit{Requests: 100, Window: time.Minute, Burst: 100},
		Account: Limit{Requests: 60, Window: time.Minute, Burst: 60},
		Public:  Limit{Requests: 1000, Window: time.Minute, Burst: 1000},
	}
}

// KeyExtractor groups requests into rate limit buckets. An empty key lets
// the request through unlimited.
type KeyExtractor func(*http.Request) string

// ClientIP returns the extractor for the caller's address. Forwarding
// headers are only honoured behind a trusted proxy; otherwise any client
// could pick its own bucket.
func ClientIP(trustProxy bool) KeyExtractor {
	return func(r *http.Request) string {
		if trustProxy {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
			if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
				return xri
			}
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return ip
	}
}

// SessionKeyExtractor returns the session subject, or "" when anonymous.
func SessionKeyExtractor(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.Subject
	}
	return ""
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets maps keys to limiters and forgets keys idle for longer than ttl.
type buckets struct {
	mu        sync.Mutex
	entries   map[string]*bucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newBuckets(l Limit, now func() time.Time) *buckets {
	return &buckets{
		entries:   make(map[string]*bucket),
		limit:     l.rate(),
		burst:     l.burst(),
		ttl:       max(2*l.Window, time.Minute),
		lastSweep: now(),
		now:       now,
	}
}

func (b *buckets) get(key string) (*rate.Limiter, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) >= b.ttl {
		for k, e := range b.entries {
			if now.Sub(e.lastSeen) >= b.ttl {
				delete(b.entries, k)
			}
		}
		b.lastSweep = now
	}

	e, ok := b.entries[key]
	if !ok {
		e = &bucket{limiter: rate.NewLimiter(b.limit, b.burst)}
		b.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter, now
}

func (b *buckets) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// RateLimitMiddleware limits requests per key. Responses carry the
// RateLimit-Policy and RateLimit headers; when limiters are nested the
// innermost one's headers win.
func RateLimitMiddleware(l Limit, keyExtractor KeyExtractor) Middleware {
	return rateLimitMiddleware(l, keyExtractor, newBuckets(l, time.Now))
}

func rateLimitMiddleware(l Limit, keyExtractor KeyExtractor, b *buckets) Middleware {
	policy := fmt.Sprintf("%d;w=%d", l.Requests, int(l.Window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyExtractor(r)
			if key == "" || b.limit == rate.Inf {
				next.ServeHTTP(w, r)
				return
			}

			limiter, now := b.get(key)
			allowed := limiter.AllowN(now, 1)
			tokens := limiter.TokensAt(now)

			h := w.Header()
			h.Set("RateLimit-Policy", policy)
			h.Set("RateLimit", fmt.Sprintf("limit=%d, remaining=%d, reset=%d",
				l.Requests, max(int(math.Floor(tokens)), 0), secondsUntil(float64(b.burst)-tokens, b.limit)))

			if !allowed {
				retryAfter := secondsUntil(1-tokens, b.limit)
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				slogx.FromContext(r.Context()).Warn("rate limit exceeded",
					"policy", policy,
					"retry_after", retryAfter,
				)
				WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// secondsUntil is how long the bucket needs to gain missing tokens, rounded
// up, at least one second when anything is missing.
func secondsUntil(missing float64, limit rate.Limit) int {
	if missing <= 0 {
		return 0
	}
	return max(int(math.Ceil(missing/float64(limit))), 1)
}

// RateLimitByIP limits by client address.
func RateLimitByIP(l Limit, clientIP KeyExtractor) Middleware {
	return RateLimitMiddleware(l, clientIP)
}

// RateLimitByUser limits by session subject and address. Anonymous requests
// are keyed by address alone.
func RateLimitByUser(l Limit, clientIP KeyExtractor) Middleware {
	return RateLimitMiddleware(l, CompositeKeyExtractor(":", SessionKeyExtractor, clientIP))
}
