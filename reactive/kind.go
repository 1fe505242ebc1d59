package reactive

type Kind uint8

const (
	KindPlain Kind = iota
	KindSignal
	KindReadonly
	KindMemo
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSignal:
		return "signal"
	case KindReadonly:
		return "readonly"
	case KindMemo:
		return "memo"
	default:
		return "unknown"
	}
}

// Reader is anything producing a T: signals, memos and wrapped plain values.
type Reader[T any] interface {
	Kind() Kind
	Read() (T, error)
}

type plain[T any] func() T

func (p plain[T]) Kind() Kind {
	return KindPlain
}

func (p plain[T]) Read() (T, error) {
	return p(), nil
}

// Plain wraps a function that is not backed by the graph.
func Plain[T any](fn func() T) Reader[T] {
	return plain[T](fn)
}

// Static wraps a constant.
func Static[T any](v T) Reader[T] {
	return plain[T](func() T { return v })
}

// IsSignal reports whether r is tracked by a reactive system.
func IsSignal[T any](r Reader[T]) bool {
	return r != nil && r.Kind() != KindPlain
}
