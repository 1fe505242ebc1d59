package reactive

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

type OnErrorFunc func(from string, err error)

// Observer receives notifications about work done by the graph.
type Observer interface {
	MemoRecomputed(id string, changed bool, err error)
	EffectRan(id string, err error)
	DrainCompleted(ran int)
}

type nopObserver struct{}

func (nopObserver) MemoRecomputed(string, bool, error) {}
func (nopObserver) EffectRan(string, error)            {}
func (nopObserver) DrainCompleted(int)                 {}

// ReactiveSystem owns the active consumer slot, the consumer registry and the
// effect queue. It is not safe for concurrent use.
type ReactiveSystem struct {
	activeConsumer      *ReactiveNode
	inNotificationPhase bool

	nextID NodeID
	nodes  map[NodeID]*ReactiveNode

	liveEffects    mapset.Set[*Watch]
	queued         mapset.Set[*Watch]
	pending        []*Watch
	drainScheduled bool

	scheduler Scheduler
	logger    *slog.Logger
	observer  Observer
	onError   OnErrorFunc
}

type SystemOption func(rs *ReactiveSystem)

func WithScheduler(s Scheduler) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.scheduler = s
	}
}

func WithLogger(logger *slog.Logger) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

func WithObserver(o Observer) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.observer = o
	}
}

// WithErrorHandler sets the function receiving errors returned by effects.
// By default they are logged.
func WithErrorHandler(onError OnErrorFunc) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.onError = onError
	}
}

func CreateReactiveSystem(opts ...SystemOption) *ReactiveSystem {
	rs := &ReactiveSystem{
		nodes:       map[NodeID]*ReactiveNode{},
		liveEffects: mapset.NewThreadUnsafeSet[*Watch](),
		queued:      mapset.NewThreadUnsafeSet[*Watch](),
		scheduler:   &MicrotaskQueue{},
		logger:      slog.Default(),
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.onError == nil {
		rs.onError = func(from string, err error) {
			rs.logger.Error("effect failed", "id", from, "error", err)
		}
	}
	return rs
}

// setActiveConsumer makes n the consumer that producer reads are attributed
// to and returns the previous one, which the caller must restore.
func (rs *ReactiveSystem) setActiveConsumer(n *ReactiveNode) *ReactiveNode {
	prev := rs.activeConsumer
	rs.activeConsumer = n
	return prev
}

// producerUpdatesAllowed reports whether signals may be written right now.
func (rs *ReactiveSystem) producerUpdatesAllowed() bool {
	return rs.activeConsumer == nil || rs.activeConsumer.allowSignalWrites
}

func (rs *ReactiveSystem) register(n *ReactiveNode) {
	rs.nodes[n.id] = n
}

func (rs *ReactiveSystem) unregister(n *ReactiveNode) {
	n.detach()
	delete(rs.nodes, n.id)
}

// Flush runs scheduled work until none is left when the scheduler supports
// it, and returns the number of tasks run.
func (rs *ReactiveSystem) Flush() int {
	if f, ok := rs.scheduler.(Flusher); ok {
		return f.Flush()
	}
	return 0
}

// Reset shuts down all effects and forgets every registered consumer.
func (rs *ReactiveSystem) Reset() {
	rs.ResetEffects()
	for _, n := range rs.nodes {
		n.detach()
	}
	clear(rs.nodes)
	rs.activeConsumer = nil
}
