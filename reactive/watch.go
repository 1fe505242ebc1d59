package reactive

import "fmt"

// CleanupFunc runs before the next execution of a watch and when the watch
// is destroyed.
type CleanupFunc func()

type WatchFunc func() (CleanupFunc, error)

func noopCleanup() {}

// Watch runs a side effect and re-runs it when something it read changes.
// It does not decide when to run: Notify hands it to the schedule function
// which is expected to call Run later.
type Watch struct {
	node     *ReactiveNode
	id       string
	callback WatchFunc
	schedule func(w *Watch)

	dirty   bool
	cleanup CleanupFunc
}

func NewWatch(rs *ReactiveSystem, callback WatchFunc, schedule func(w *Watch), allowSignalWrites bool) *Watch {
	w := &Watch{
		callback: callback,
		schedule: schedule,
		cleanup:  noopCleanup,
	}
	w.node = rs.newNode(w, allowSignalWrites)
	w.id = fmt.Sprintf("watch_%d", w.node.id)
	rs.register(w.node)
	return w
}

func (w *Watch) ID() string {
	return w.id
}

func (w *Watch) Dirty() bool {
	return w.dirty
}

func (w *Watch) Notify() {
	if !w.dirty {
		w.schedule(w)
	}
	w.dirty = true
}

func (w *Watch) onConsumerDependencyMayHaveChanged() {
	w.Notify()
}

// watches are never producers
func (w *Watch) onProducerUpdateValueVersion() {}

// Run executes the callback with w as the active consumer. After the first
// run the callback is skipped when none of its dependencies changed.
func (w *Watch) Run() (err error) {
	w.dirty = false
	n := w.node
	if n.trackingVersion != 0 && !n.consumerPollProducersForChange() {
		return nil
	}

	rs := n.rs
	prev := rs.setActiveConsumer(n)
	n.trackingVersion++
	defer func() {
		rs.setActiveConsumer(prev)
		if r := recover(); r != nil {
			err = &PanicError{ID: w.id, Value: r}
		}
	}()

	w.cleanup()
	w.cleanup = noopCleanup
	cleanup, err := w.callback()
	if cleanup != nil {
		w.cleanup = cleanup
	}
	return err
}

// Cleanup runs the cleanup registered by the last run.
func (w *Watch) Cleanup() {
	w.cleanup()
	w.cleanup = noopCleanup
}

// Dispose runs the final cleanup and removes w from the graph.
func (w *Watch) Dispose() {
	w.Cleanup()
	w.node.rs.unregister(w.node)
}
