package records

import (
	"context"
	"errors"
	"sync"
)

var ErrUnknownField = errors.New("unknown form field")

// FieldSetter stores one raw input value into the named draft field.
type FieldSetter[D any] func(draft *D, name, raw string) error

// Creator is the list side of a form submit.
type Creator[D any] interface {
	Create(ctx context.Context, draft D) bool
}

// Form holds the draft being edited and whether the form is shown.
type Form[D any] struct {
	defaults func() D
	set      FieldSetter[D]
	creator  Creator[D]

	mu      sync.Mutex
	draft   D
	visible bool
}

func NewForm[D any](defaults func() D, set FieldSetter[D], creator Creator[D]) *Form[D] {
	return &Form[D]{defaults: defaults, set: set, creator: creator, draft: defaults()}
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[D]) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *Form[D]) SetField(name, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.draft
	if err := f.set(&next, name, raw); err != nil {
		return err
	}
	f.draft = next
	return nil
}

func (f *Form[D]) ToggleVisible() {
	f.mu.Lock()
	f.visible = !f.visible
	f.mu.Unlock()
}

// Submit hands the current draft to the list. Only a successful create resets
// the draft and hides the form; on failure the input stays for a retry.
func (f *Form[D]) Submit(ctx context.Context) bool {
	draft := f.Draft()
	if !f.creator.Create(ctx, draft) {
		return false
	}
	f.mu.Lock()
	f.draft = f.defaults()
	f.visible = false
	f.mu.Unlock()
	return true
}
