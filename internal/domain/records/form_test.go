package records

import (
	"context"
	"errors"
	"testing"
)

func TestFormSubmitFailureKeepsDraft(t *testing.T) {
	g := &fakeGateway{createErr: errBoom}
	c := newTestController(g)
	f := NewForm(defaultDraft, setDraftField, c)

	f.ToggleVisible()
	if err := f.SetField("severity", "critical"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if f.Submit(context.Background()) {
		t.Fatal("expected submit to fail")
	}
	if !f.Visible() {
		t.Fatal("expected form to stay visible")
	}
	if f.Draft().Severity != "critical" {
		t.Fatalf("expected draft kept, got %+v", f.Draft())
	}
	if c.Snapshot().Err != CreateFailed {
		t.Fatalf("expected CreateFailed, got %q", c.Snapshot().Err)
	}
}

func TestFormSetFieldUnknown(t *testing.T) {
	f := NewForm(defaultDraft, setDraftField, newTestController(&fakeGateway{}))
	err := f.SetField("nope", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if f.Draft() != defaultDraft() {
		t.Fatalf("expected draft unchanged, got %+v", f.Draft())
	}
}

func TestFormToggleVisible(t *testing.T) {
	f := NewForm(defaultDraft, setDraftField, newTestController(&fakeGateway{}))
	if f.Visible() {
		t.Fatal("expected hidden form initially")
	}
	f.ToggleVisible()
	if !f.Visible() {
		t.Fatal("expected visible after toggle")
	}
	f.ToggleVisible()
	if f.Visible() {
		t.Fatal("expected hidden after second toggle")
	}
}
