package reactive

import "fmt"

// WritableSignal is a mutable state cell. Reading it inside a memo or a
// watch subscribes that consumer to later changes.
type WritableSignal[T any] struct {
	node     *ReactiveNode
	value    T
	opts     options[T]
	readonly *ReadonlySignal[T]
}

func Signal[T any](rs *ReactiveSystem, value T, opts ...Option[T]) *WritableSignal[T] {
	s := &WritableSignal[T]{
		value: value,
		opts:  buildOptions(opts),
	}
	s.node = rs.newNode(s, false)
	if s.opts.id == "" {
		s.opts.id = fmt.Sprintf("signal_%d", s.node.id)
	}
	return s
}

// signals are never consumers and are always up to date
func (s *WritableSignal[T]) onConsumerDependencyMayHaveChanged() {}
func (s *WritableSignal[T]) onProducerUpdateValueVersion()       {}

func (s *WritableSignal[T]) ID() string {
	return s.opts.id
}

func (s *WritableSignal[T]) Kind() Kind {
	return KindSignal
}

func (s *WritableSignal[T]) Value() T {
	s.node.producerAccessed()
	return s.value
}

func (s *WritableSignal[T]) Read() (T, error) {
	return s.Value(), nil
}

// Untracked returns the value without subscribing the active consumer.
func (s *WritableSignal[T]) Untracked() T {
	return Untracked(s.node.rs, s.Value)
}

// Set replaces the value and notifies consumers, unless the new value is
// equal to the current one.
func (s *WritableSignal[T]) Set(value T) error {
	if err := s.checkWrite(); err != nil {
		return err
	}
	if s.opts.equal(s.value, value) {
		return nil
	}
	s.value = value
	s.changed()
	return nil
}

func (s *WritableSignal[T]) Update(fn func(value T) T) error {
	if err := s.checkWrite(); err != nil {
		return err
	}
	return s.Set(fn(s.value))
}

// Mutate changes the value in place. Consumers are always notified.
func (s *WritableSignal[T]) Mutate(fn func(value *T)) error {
	if err := s.checkWrite(); err != nil {
		return err
	}
	fn(&s.value)
	s.changed()
	return nil
}

// Readonly returns a view of s without mutators. The same view is returned
// on every call.
func (s *WritableSignal[T]) Readonly() *ReadonlySignal[T] {
	if s.readonly == nil {
		s.readonly = &ReadonlySignal[T]{source: s}
	}
	return s.readonly
}

func (s *WritableSignal[T]) checkWrite() error {
	rs := s.node.rs
	if rs.producerUpdatesAllowed() {
		return nil
	}
	return &WriteNotAllowedError{ID: s.opts.id, Consumer: rs.activeConsumer.id}
}

func (s *WritableSignal[T]) changed() {
	s.node.valueVersion++
	s.node.producerMayHaveChanged()
	if s.opts.log {
		s.node.rs.logger.Debug("signal changed", "id", s.opts.id, "version", s.node.valueVersion, "value", s.value)
	}
	s.opts.onChange(s.value)
}

type ReadonlySignal[T any] struct {
	source *WritableSignal[T]
}

func (r *ReadonlySignal[T]) ID() string {
	return r.source.opts.id
}

func (r *ReadonlySignal[T]) Kind() Kind {
	return KindReadonly
}

func (r *ReadonlySignal[T]) Value() T {
	return r.source.Value()
}

func (r *ReadonlySignal[T]) Read() (T, error) {
	return r.source.Value(), nil
}

func (r *ReadonlySignal[T]) Untracked() T {
	return r.source.Untracked()
}
