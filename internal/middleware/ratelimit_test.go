package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(2, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:5000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d; want 200", i, rec.Code)
		}
	}

	rec := do("10.0.0.1:6000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d; want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "30" {
		t.Errorf("Retry-After = %q; want 30", rec.Header().Get("Retry-After"))
	}

	if rec := do("10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Errorf("other client status = %d; want 200", rec.Code)
	}

	now = now.Add(31 * time.Second)
	if rec := do("10.0.0.1:5000"); rec.Code != http.StatusOK {
		t.Errorf("after refill status = %d; want 200", rec.Code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, nil)
	for i := 0; i < 100; i++ {
		if !rl.allow("x") {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestRateLimiter_PrunesIdleClients(t *testing.T) {
	rl := NewRateLimiter(10, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	rl.allow("b")
	now = now.Add(limiterIdleTTL + time.Minute)
	rl.allow("c")

	if len(rl.clients) != 1 {
		t.Errorf("clients = %d; want 1 after pruning", len(rl.clients))
	}
}
