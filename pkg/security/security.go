package security

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/models"
	"golang.org/x/time/rate"
)

// ipLimiter wraps a rate limiter with a last-seen timestamp for cleanup
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages rate limiting per IP address with automatic cleanup
type RateLimiter struct {
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
	done     chan struct{}
}

// NewRateLimiter creates a rate limiter whose cleanup loop runs until ctx
// is cancelled.
func NewRateLimiter(ctx context.Context) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Limit(models.RateLimit) / 60,
		burst:    models.RateBurst,
		done:     make(chan struct{}),
	}
	rl.startCleanup(ctx, 5*time.Minute)
	return rl
}

// Done is closed once the cleanup loop has exited
func (rl *RateLimiter) Done() <-chan struct{} {
	return rl.done
}

// GetLimiter returns a rate limiter for the given IP address
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = &ipLimiter{limiter: limiter, lastSeen: time.Now()}

		logging.LogDebug("Created new rate limiter for IP",
			"ip", ip,
			"rate_per_minute", models.RateLimit,
			"burst", rl.burst)

		return limiter
	}

	entry.lastSeen = time.Now()
	return entry.limiter
}

// startCleanup runs a background goroutine to remove stale rate limiters
func (rl *RateLimiter) startCleanup(ctx context.Context, every time.Duration) {
	go func() {
		defer close(rl.done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanupStale(time.Now().Add(-10 * time.Minute))
			}
		}
	}()
}

// cleanupStale removes rate limiters not seen since threshold
func (rl *RateLimiter) cleanupStale(threshold time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	for ip, entry := range rl.limiters {
		if entry.lastSeen.Before(threshold) {
			delete(rl.limiters, ip)
			removed++
		}
	}

	if removed > 0 {
		logging.LogInfo("Cleaned up stale rate limiters",
			"removed", removed,
			"remaining", len(rl.limiters))
	}
}

// Middleware rejects clients that exceed their request budget
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		limiter := rl.GetLimiter(ip)

		if !limiter.Allow() {
			logging.LogSecurityEvent("Rate limit exceeded", "high",
				"ip", ip,
				"user_agent", r.UserAgent(),
				"path", r.URL.Path,
				"method", r.Method)

			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Headers sets the browser security headers on every response. The page
// runs WebAssembly, so the CSP allows wasm-unsafe-eval for scripts.
func Headers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'wasm-unsafe-eval'; object-src 'none'; base-uri 'self'; form-action 'self'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs every request after it has been served
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogHTTPRequest(r.Method, r.URL.Path, r.UserAgent(), GetClientIP(r), rec.status, time.Since(start))
	})
}

// GetClientIP extracts the real client IP from request headers
func GetClientIP(r *http.Request) string {
	// Cloudflare sets this header with the verified client IP
	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return strings.TrimSpace(cfIP)
	}

	// X-Forwarded-For can contain multiple IPs, get the first one
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}

	// Remove brackets for IPv6
	return strings.Trim(ip, "[]")
}
