package records

// Record is anything the external API identifies by an opaque id.
type Record interface {
	RecordID() string
}

type ErrorKind string

const (
	ErrNone      ErrorKind = ""
	LoadFailed   ErrorKind = "load_failed"
	CreateFailed ErrorKind = "create_failed"
	DeleteFailed ErrorKind = "delete_failed"
)

func (k ErrorKind) Message() string {
	switch k {
	case LoadFailed:
		return "failed to load"
	case CreateFailed:
		return "failed to add"
	case DeleteFailed:
		return "failed to delete"
	}
	return ""
}

// State is the per-view list cache. It mirrors the last outcome of the
// operations issued by this view only.
type State[T Record] struct {
	Items   []T
	Loading bool
	Err     ErrorKind
}

// NewState starts in the loading state until the first load completes.
func NewState[T Record]() State[T] {
	return State[T]{Items: []T{}, Loading: true}
}

func (s State[T]) Clone() State[T] {
	items := make([]T, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

func BeginLoad[T Record](s State[T]) State[T] {
	next := s.Clone()
	next.Loading = true
	next.Err = ErrNone
	return next
}

func ApplyLoadResult[T Record](s State[T], r Result[[]T]) State[T] {
	next := s.Clone()
	next.Loading = false
	if r.Failed() {
		next.Err = LoadFailed
		return next
	}
	items := make([]T, len(r.Value))
	copy(items, r.Value)
	next.Items = items
	next.Err = ErrNone
	return next
}

func ApplyCreateResult[T Record](s State[T], r Result[T]) State[T] {
	next := s.Clone()
	if r.Failed() {
		next.Err = CreateFailed
		return next
	}
	next.Items = append(next.Items, r.Value)
	next.Err = ErrNone
	return next
}

func ApplyDeleteResult[T Record](s State[T], id string, r Result[struct{}]) State[T] {
	next := s.Clone()
	if r.Failed() {
		next.Err = DeleteFailed
		return next
	}
	for i, item := range next.Items {
		if item.RecordID() == id {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
			break
		}
	}
	next.Err = ErrNone
	return next
}
