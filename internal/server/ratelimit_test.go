package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantlab/stockdash/internal/config"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := newRateLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within budget", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over budget was allowed")
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := newRateLimiter(1, 15*time.Minute)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first client not limited after budget")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second client should have its own budget")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0, 0)

	for i := 0; i < 1000; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatal("disabled limiter denied a request")
		}
	}
}

func TestRateLimitReturns429(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Market.RateLimit.Requests = 2
		cfg.Market.RateLimit.WindowMinutes = 15
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		last = httptest.NewRecorder()
		srv.Handler().ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after budget exhausted, got %d", last.Code)
	}
	resp := decodeJSON(t, last)
	if resp["status"] != "fail" {
		t.Errorf("expected fail envelope, got %v", resp["status"])
	}
}

func TestRateLimitSkipsNonAPIRoutes(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Market.RateLimit.Requests = 1
		cfg.Market.RateLimit.WindowMinutes = 15
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("health request %d limited: %d", i+1, rec.Code)
		}
	}
}
