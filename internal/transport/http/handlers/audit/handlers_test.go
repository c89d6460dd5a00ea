package audithandler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"pdpconsole/internal/domain/audit"
)

type fakeLister struct {
	events []audit.Event
	err    error
	filter audit.Filter
	limit  int
	offset int
}

func (f *fakeLister) List(_ context.Context, filter audit.Filter, limit, offset int) ([]audit.Event, error) {
	f.filter, f.limit, f.offset = filter, limit, offset
	return f.events, f.err
}

func newRouter(l Lister) http.Handler {
	r := chi.NewRouter()
	NewHandler(l).RegisterRoutes(r)
	return r
}

func sampleEvents() []audit.Event {
	return []audit.Event{{
		ID:         9,
		Action:     audit.ActionBreachCreate,
		EntityType: "data_breach",
		EntityID:   "2",
		RequestID:  "req-1",
		IP:         "192.0.2.1",
		CreatedAt:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}}
}

func TestListEventsPassesFilterAndPaging(t *testing.T) {
	lister := &fakeLister{events: sampleEvents()}
	rec := httptest.NewRecorder()
	newRouter(lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit?action=breach.create&entityType=data_breach&limit=900&offset=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if lister.filter.Action != audit.ActionBreachCreate || lister.filter.EntityType != "data_breach" {
		t.Fatalf("unexpected filter %+v", lister.filter)
	}
	if lister.limit != 500 || lister.offset != 5 {
		t.Fatalf("expected limit capped at 500 and offset 5, got %d/%d", lister.limit, lister.offset)
	}

	var body struct {
		Success bool          `json:"success"`
		Data    []audit.Event `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || len(body.Data) != 1 || body.Data[0].EntityID != "2" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestListEventsFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeLister{err: errors.New("db down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuditDisabledWithoutStore(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestExportEventsCSV(t *testing.T) {
	lister := &fakeLister{events: sampleEvents()}
	rec := httptest.NewRecorder()
	newRouter(lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "9" || rows[1][6] != "2024-01-01T08:00:00Z" {
		t.Fatalf("unexpected rows %v", rows)
	}
	if lister.limit != exportLimit {
		t.Fatalf("expected export limit %d, got %d", exportLimit, lister.limit)
	}
}
