package reactive

type options[T any] struct {
	id       string
	log      bool
	equal    EqualFunc[T]
	onChange func(T)
}

type Option[T any] func(o *options[T])

// WithID names the signal in logs, errors and metrics.
func WithID[T any](id string) Option[T] {
	return func(o *options[T]) {
		o.id = id
	}
}

// WithLog logs every change of the value at debug level.
func WithLog[T any]() Option[T] {
	return func(o *options[T]) {
		o.log = true
	}
}

func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(o *options[T]) {
		o.equal = equal
	}
}

// WithOnChange registers a callback invoked synchronously after each change.
func WithOnChange[T any](onChange func(T)) Option[T] {
	return func(o *options[T]) {
		o.onChange = onChange
	}
}

func buildOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{
		equal:    DefaultEquals[T],
		onChange: func(T) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
