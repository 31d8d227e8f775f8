package security

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/models"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	logging.InitLogger(slog.LevelError)
	goleak.VerifyTestMain(m)
}

// --- GetClientIP ---

func TestGetClientIP_CloudflareHeader(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("CF-Connecting-IP", "1.2.3.4")
	r.Header.Set("X-Forwarded-For", "5.6.7.8")
	r.RemoteAddr = "9.10.11.12:1234"

	ip := GetClientIP(r)
	if ip != "1.2.3.4" {
		t.Errorf("want CF-Connecting-IP 1.2.3.4, got %s", ip)
	}
}

func TestGetClientIP_XForwardedFor(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	r.RemoteAddr = "9.10.11.12:1234"

	ip := GetClientIP(r)
	if ip != "10.0.0.1" {
		t.Errorf("want first XFF IP 10.0.0.1, got %s", ip)
	}
}

func TestGetClientIP_XRealIP(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-IP", "192.168.1.1")
	r.RemoteAddr = "9.10.11.12:1234"

	ip := GetClientIP(r)
	if ip != "192.168.1.1" {
		t.Errorf("want X-Real-IP 192.168.1.1, got %s", ip)
	}
}

func TestGetClientIP_RemoteAddr(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.RemoteAddr = "172.16.0.1:54321"

	ip := GetClientIP(r)
	if ip != "172.16.0.1" {
		t.Errorf("want 172.16.0.1, got %s", ip)
	}
}

func TestGetClientIP_IPv6(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.RemoteAddr = "[::1]:8080"

	ip := GetClientIP(r)
	if ip != "::1" {
		t.Errorf("want ::1, got %s", ip)
	}
}

// --- RateLimiter ---

func newLimiter(t *testing.T) *RateLimiter {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	rl := NewRateLimiter(ctx)
	t.Cleanup(func() {
		cancel()
		<-rl.Done()
	})
	return rl
}

func TestRateLimiter_SameLimiterPerIP(t *testing.T) {
	rl := newLimiter(t)

	a := rl.GetLimiter("1.1.1.1")
	b := rl.GetLimiter("1.1.1.1")
	c := rl.GetLimiter("2.2.2.2")

	if a != b {
		t.Error("same IP should reuse its limiter")
	}
	if a == c {
		t.Error("different IPs should get separate limiters")
	}
}

func TestRateLimiter_CleanupStale(t *testing.T) {
	rl := newLimiter(t)
	rl.GetLimiter("1.1.1.1")
	rl.GetLimiter("2.2.2.2")

	rl.mutex.Lock()
	rl.limiters["1.1.1.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mutex.Unlock()

	rl.cleanupStale(time.Now().Add(-10 * time.Minute))

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	if _, ok := rl.limiters["1.1.1.1"]; ok {
		t.Error("stale limiter should be removed")
	}
	if _, ok := rl.limiters["2.2.2.2"]; !ok {
		t.Error("fresh limiter should remain")
	}
}

func TestRateLimiter_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rl := NewRateLimiter(ctx)
	cancel()

	select {
	case <-rl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := newLimiter(t)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var limited int
	for i := 0; i < models.RateBurst+5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	if limited == 0 {
		t.Error("requests beyond the burst should be rejected")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:4000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other clients should not be limited, got %d", w.Code)
	}
}

// --- Headers ---

func TestHeaders(t *testing.T) {
	h := Headers(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, name := range []string{"Content-Security-Policy", "X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy"} {
		if w.Header().Get(name) == "" {
			t.Errorf("%s header missing", name)
		}
	}
}

func TestAccessLog_PassesStatus(t *testing.T) {
	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/brew", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("want 418, got %d", w.Code)
	}
}
