package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	limited := MutationRateLimit(1, time.Minute)(noContent())

	first := httptest.NewRequest(http.MethodPost, "/breaches", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	other := httptest.NewRequest(http.MethodPost, "/breaches", nil)
	other.RemoteAddr = "203.0.113.11:4444"
	otherRec := httptest.NewRecorder()
	limited.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusNoContent {
		t.Fatalf("expected another client to pass, got %d", otherRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/breaches", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by ip key, got %d", secondRec.Code)
	}
}

func TestRateLimitWindowReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/requests", nil)
		req.RemoteAddr = "192.0.2.20:1111"
		rec := httptest.NewRecorder()
		if rl.enforce(rec, req) {
			return http.StatusNoContent
		}
		return rec.Code
	}

	if got := send(); got != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", got)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", got)
	}
	now = now.Add(61 * time.Second)
	if got := send(); got != http.StatusNoContent {
		t.Fatalf("expected request after window reset to pass, got %d", got)
	}
}

func TestRateLimitReturnsRetryMetadata(t *testing.T) {
	limited := MutationRateLimit(1, time.Minute)(noContent())

	req1 := httptest.NewRequest(http.MethodPost, "/breaches/1/delete", nil)
	req1.RemoteAddr = "192.0.2.30:1234"
	limited.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodPost, "/breaches/1/delete", nil)
	req2.RemoteAddr = "192.0.2.30:1234"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req2)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected throttled response, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("expected X-RateLimit-Reset header")
	}
}

func TestMutationRateLimitIgnoresReads(t *testing.T) {
	limited := MutationRateLimit(2, time.Minute)(noContent())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/breaches", nil)
		req.RemoteAddr = "198.51.100.40:8888"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected read request %d to bypass the limit, got %d", i+1, rec.Code)
		}
	}

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/breaches/reload", nil)
		req.RemoteAddr = "198.51.100.41:9999"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if i < 2 && rec.Code != http.StatusNoContent {
			t.Fatalf("expected mutation %d to pass, got %d", i+1, rec.Code)
		}
		if i == 2 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected third mutation to be throttled, got %d", rec.Code)
		}
	}
}
