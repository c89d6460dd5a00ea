package records

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Gateway is the external API for one record kind. Any fault, whatever its
// cause, is reported as a non-nil error.
type Gateway[T Record, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload P) (T, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer answers the yes/no prompt shown before a delete.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// PayloadFunc builds the create payload from a draft, adding the fields the
// client derives itself (today's date, initial status).
type PayloadFunc[D any, P any] func(draft D, now time.Time) P

type Config[T Record, D any, P any] struct {
	Kind         string
	Gateway      Gateway[T, P]
	Payload      PayloadFunc[D, P]
	DeletePrompt string
	Now          func() time.Time
	Logger       *slog.Logger
	OnCreated    func(ctx context.Context, record T)
	OnDeleted    func(ctx context.Context, id string)
}

// Controller owns one view's list, loading flag and error flag.
//
// Gateway calls run outside the lock; only the state transition applied on
// completion is serialized.
type Controller[T Record, D any, P any] struct {
	cfg Config[T, D, P]

	mu    sync.Mutex
	state State[T]
}

func NewController[T Record, D any, P any](cfg Config[T, D, P]) *Controller[T, D, P] {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller[T, D, P]{cfg: cfg, state: NewState[T]()}
}

func (c *Controller[T, D, P]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller[T, D, P]) Load(ctx context.Context) {
	c.update(func(s State[T]) State[T] { return BeginLoad(s) })

	items, err := c.cfg.Gateway.List(ctx)
	if err != nil {
		c.cfg.Logger.Warn("record list failed", "kind", c.cfg.Kind, "err", err)
	}
	c.update(func(s State[T]) State[T] { return ApplyLoadResult(s, ResultOf(items, err)) })
}

// Create reports whether the gateway accepted the draft.
func (c *Controller[T, D, P]) Create(ctx context.Context, draft D) bool {
	payload := c.cfg.Payload(draft, c.cfg.Now())
	record, err := c.cfg.Gateway.Create(ctx, payload)
	if err != nil {
		c.cfg.Logger.Warn("record create failed", "kind", c.cfg.Kind, "err", err)
	}
	result := ResultOf(record, err)
	c.update(func(s State[T]) State[T] { return ApplyCreateResult(s, result) })
	if result.Failed() {
		return false
	}
	if c.cfg.OnCreated != nil {
		c.cfg.OnCreated(ctx, record)
	}
	return true
}

// Delete asks confirm first; a declined prompt makes no gateway call and
// leaves the state untouched. It reports whether a record was deleted.
func (c *Controller[T, D, P]) Delete(ctx context.Context, id string, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(c.cfg.DeletePrompt) {
		return false
	}
	err := c.cfg.Gateway.Delete(ctx, id)
	if err != nil {
		c.cfg.Logger.Warn("record delete failed", "kind", c.cfg.Kind, "id", id, "err", err)
	}
	result := ResultOf(struct{}{}, err)
	c.update(func(s State[T]) State[T] { return ApplyDeleteResult(s, id, result) })
	if result.Failed() {
		return false
	}
	if c.cfg.OnDeleted != nil {
		c.cfg.OnDeleted(ctx, id)
	}
	return true
}

func (c *Controller[T, D, P]) update(fn func(State[T]) State[T]) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
}
