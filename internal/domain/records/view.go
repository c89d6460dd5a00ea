package records

import (
	"context"
	"sync"
)

// View is one mounted instance of a management view: its list controller and
// its form. Mount loads the list the first time only.
type View[T Record, D any, P any] struct {
	List *Controller[T, D, P]
	Form *Form[D]

	mountOnce sync.Once
}

func NewView[T Record, D any, P any](cfg Config[T, D, P], defaults func() D, set FieldSetter[D]) *View[T, D, P] {
	list := NewController(cfg)
	return &View[T, D, P]{List: list, Form: NewForm(defaults, set, list)}
}

func (v *View[T, D, P]) Mount(ctx context.Context) {
	v.mountOnce.Do(func() {
		v.List.Load(ctx)
	})
}

// Reload fetches the list again. On an unmounted view it counts as the mount,
// so the list is fetched once, not twice.
func (v *View[T, D, P]) Reload(ctx context.Context) {
	mounted := false
	v.mountOnce.Do(func() {
		mounted = true
		v.List.Load(ctx)
	})
	if !mounted {
		v.List.Load(ctx)
	}
}
