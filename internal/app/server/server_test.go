package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"pdpconsole/internal/domain/breach"
	"pdpconsole/internal/domain/privacyreq"
	"pdpconsole/internal/platform/config"
)

func testConfig() config.Config {
	return config.Config{
		Addr:               ":0",
		Environment:        "test",
		APITimeout:         time.Second,
		APITokenAudience:   "pdp-api",
		APITokenTTL:        time.Minute,
		SessionSecret:      "0123456789abcdef0123456789abcdef",
		SessionTTL:         time.Hour,
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 100,
		MetricsEnabled:     true,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg, Deps{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	app := newTestApp(t, testConfig())

	if rec := get(t, app.Router, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, app.Router, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz without database should be ready, got %d", rec.Code)
	}
	rec := get(t, app.Router, "/healthz")
	if rec.Header().Get("X-Request-ID") == "" || rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected request id and security headers on every response")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, testConfig())
	get(t, app.Router, "/healthz")

	rec := get(t, app.Router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Data["sessions"]; !ok {
		t.Fatalf("expected sessions gauge in %v", body.Data)
	}

	cfg := testConfig()
	cfg.MetricsEnabled = false
	if rec := get(t, newTestApp(t, cfg).Router, "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected metrics to be unrouted when disabled, got %d", rec.Code)
	}
}

func TestViewsWithoutAPIReportLoadFailure(t *testing.T) {
	app := newTestApp(t, testConfig())

	rec := get(t, app.Router, "/breaches")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to load breaches") {
		t.Fatal("expected load failure banner when no API is configured")
	}
	if !strings.Contains(get(t, app.Router, "/requests").Body.String(), "Failed to load requests") {
		t.Fatal("expected load failure banner on the requests view")
	}
}

func TestViewsAgainstAPI(t *testing.T) {
	var (
		mu      sync.Mutex
		gotAuth string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/data-breaches":
			_ = json.NewEncoder(w).Encode([]breach.DataBreach{{ID: "1", Type: breach.TypePaymentDataLeak, Severity: breach.SeverityCritical, AffectedUsers: 3}})
		case "/privacy-requests":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []privacyreq.PrivacyRequest{{ID: "4", UserName: "Dana", RequestType: privacyreq.TypeDataAccess}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.APIBaseURL = upstream.URL
	cfg.APITokenSecret = "service-secret"
	app := newTestApp(t, cfg)

	body := get(t, app.Router, "/breaches").Body.String()
	if !strings.Contains(body, "Payment data leak") || !strings.Contains(body, "severity-critical") {
		t.Fatal("expected breach card from the API")
	}
	mu.Lock()
	auth := gotAuth
	mu.Unlock()
	if !strings.HasPrefix(auth, "Bearer ") {
		t.Fatalf("expected service token on API calls, got %q", auth)
	}
	if !strings.Contains(get(t, app.Router, "/requests").Body.String(), "Dana") {
		t.Fatal("expected request card from the enveloped API response")
	}
}

func TestMutationsAreRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	app := newTestApp(t, cfg)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/breaches/form/toggle", strings.NewReader(url.Values{}.Encode()))
		req.RemoteAddr = "198.51.100.5:1000"
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := post(); code != http.StatusSeeOther {
		t.Fatalf("expected first toggle to redirect, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second toggle to be throttled, got %d", code)
	}
	if rec := get(t, app.Router, "/breaches"); rec.Code != http.StatusOK {
		t.Fatalf("reads must not be throttled, got %d", rec.Code)
	}
}

func TestAuditDisabledWithoutDatabase(t *testing.T) {
	app := newTestApp(t, testConfig())
	if rec := get(t, app.Router, "/audit"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a database, got %d", rec.Code)
	}
}

func TestStartStopsWithContext(t *testing.T) {
	app := newTestApp(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	app.Start(ctx)
	cancel()
}
