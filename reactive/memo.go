package reactive

import "fmt"

type memoState uint8

const (
	memoUnset memoState = iota
	memoComputing
	memoErrored
	memoReady
)

// MemoizedSignal derives its value from other signals. The computation runs
// lazily on read and only when one of the values it read last time changed.
// Errors are cached the same way values are.
type MemoizedSignal[T any] struct {
	node        *ReactiveNode
	computation func() (T, error)
	opts        options[T]

	state memoState
	value T
	err   error
	// stale is set once a dependency may have changed and cleared when the
	// cached value has been checked against the new dependency versions.
	stale bool
	// cycleErr is set when the memo is read while computing.
	cycleErr error
}

func Memo[T any](rs *ReactiveSystem, computation func() (T, error), opts ...Option[T]) *MemoizedSignal[T] {
	m := &MemoizedSignal[T]{
		computation: computation,
		opts:        buildOptions(opts),
		stale:       true,
	}
	m.node = rs.newNode(m, false)
	if m.opts.id == "" {
		m.opts.id = fmt.Sprintf("memo_%d", m.node.id)
	}
	rs.register(m.node)
	return m
}

func (m *MemoizedSignal[T]) ID() string {
	return m.opts.id
}

func (m *MemoizedSignal[T]) Kind() Kind {
	return KindMemo
}

func (m *MemoizedSignal[T]) onConsumerDependencyMayHaveChanged() {
	if m.stale {
		return
	}
	m.stale = true
	m.node.producerMayHaveChanged()
}

func (m *MemoizedSignal[T]) onProducerUpdateValueVersion() {
	if !m.stale {
		return
	}
	if (m.state == memoReady || m.state == memoErrored) && !m.node.consumerPollProducersForChange() {
		m.stale = false
		return
	}
	m.recompute()
}

func (m *MemoizedSignal[T]) recompute() {
	if m.state == memoComputing {
		m.cycleErr = &CycleDetectedError{ID: m.opts.id}
		return
	}

	oldState, oldValue := m.state, m.value
	m.state = memoComputing
	m.node.trackingVersion++
	value, err := m.compute()
	m.stale = false

	if m.cycleErr != nil {
		err = m.cycleErr
		m.cycleErr = nil
	}
	if err != nil {
		var zero T
		m.state, m.value, m.err = memoErrored, zero, err
		m.node.valueVersion++
		m.node.rs.observer.MemoRecomputed(m.opts.id, true, err)
		return
	}

	if oldState == memoReady && m.opts.equal(oldValue, value) {
		m.state, m.value = memoReady, oldValue
		m.node.rs.observer.MemoRecomputed(m.opts.id, false, nil)
		return
	}

	m.state, m.value, m.err = memoReady, value, nil
	m.node.valueVersion++
	m.node.rs.observer.MemoRecomputed(m.opts.id, true, nil)
	if m.opts.log {
		m.node.rs.logger.Debug("memo changed", "id", m.opts.id, "version", m.node.valueVersion, "value", value)
	}
	m.opts.onChange(value)
}

func (m *MemoizedSignal[T]) compute() (value T, err error) {
	rs := m.node.rs
	prev := rs.setActiveConsumer(m.node)
	defer func() {
		rs.setActiveConsumer(prev)
		if r := recover(); r != nil {
			err = &PanicError{ID: m.opts.id, Value: r}
		}
	}()
	return m.computation()
}

// Value returns the memoized value, recomputing it first when needed.
func (m *MemoizedSignal[T]) Value() (T, error) {
	m.onProducerUpdateValueVersion()
	if m.state == memoComputing {
		var zero T
		return zero, m.cycleErr
	}
	m.node.producerAccessed()
	if m.state == memoErrored {
		return m.value, m.err
	}
	return m.value, nil
}

func (m *MemoizedSignal[T]) Read() (T, error) {
	return m.Value()
}

// Untracked returns the value without subscribing the active consumer.
func (m *MemoizedSignal[T]) Untracked() (T, error) {
	rs := m.node.rs
	prev := rs.setActiveConsumer(nil)
	defer rs.setActiveConsumer(prev)
	return m.Value()
}

// Dispose removes the memo from the graph. A disposed memo keeps its last
// value but is no longer notified of changes.
func (m *MemoizedSignal[T]) Dispose() {
	m.node.rs.unregister(m.node)
}
