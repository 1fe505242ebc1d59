package reactive

import (
	"maps"
	"slices"
)

type NodeID uint64

// edge is shared between the consumer's producers map and the producer's
// liveConsumers map so a refresh from either side is seen by both.
type edge struct {
	producer          *ReactiveNode
	consumer          NodeID
	atTrackingVersion uint64
	seenValueVersion  uint64
}

type nodeHooks interface {
	onConsumerDependencyMayHaveChanged()
	onProducerUpdateValueVersion()
}

// ReactiveNode is the bookkeeping shared by every participant of the graph.
// Signals only use the producer half, watches only the consumer half and
// memos use both.
type ReactiveNode struct {
	rs *ReactiveSystem
	id NodeID

	// valueVersion is bumped whenever the value held by the node changes.
	valueVersion uint64
	// trackingVersion is bumped at the start of every tracked evaluation.
	trackingVersion uint64

	producers     map[NodeID]*edge
	liveConsumers map[NodeID]*edge

	allowSignalWrites bool
	hooks             nodeHooks
}

func (rs *ReactiveSystem) newNode(hooks nodeHooks, allowSignalWrites bool) *ReactiveNode {
	rs.nextID++
	return &ReactiveNode{
		rs:                rs,
		id:                rs.nextID,
		producers:         map[NodeID]*edge{},
		liveConsumers:     map[NodeID]*edge{},
		allowSignalWrites: allowSignalWrites,
		hooks:             hooks,
	}
}

func (n *ReactiveNode) ID() NodeID {
	return n.id
}

// producerAccessed records a dependency of the active consumer on n.
func (n *ReactiveNode) producerAccessed() {
	rs := n.rs
	if rs.inNotificationPhase {
		panic("reactive: producer read during notification phase")
	}
	consumer := rs.activeConsumer
	if consumer == nil {
		return
	}

	e, ok := consumer.producers[n.id]
	if !ok {
		e = &edge{
			producer:          n,
			consumer:          consumer.id,
			seenValueVersion:  n.valueVersion,
			atTrackingVersion: consumer.trackingVersion,
		}
		consumer.producers[n.id] = e
		n.liveConsumers[consumer.id] = e
		return
	}
	e.seenValueVersion = n.valueVersion
	e.atTrackingVersion = consumer.trackingVersion
	// an edge pruned from this side earlier is revived
	n.liveConsumers[consumer.id] = e
}

// producerMayHaveChanged notifies every live consumer of n. Edges whose
// consumer is gone or which were not confirmed during the consumer's latest
// evaluation are dropped on the way.
func (n *ReactiveNode) producerMayHaveChanged() {
	rs := n.rs
	prev := rs.inNotificationPhase
	rs.inNotificationPhase = true
	defer func() {
		rs.inNotificationPhase = prev
	}()

	for _, id := range slices.Sorted(maps.Keys(n.liveConsumers)) {
		e, ok := n.liveConsumers[id]
		if !ok {
			continue
		}
		consumer, alive := rs.nodes[id]
		if !alive || consumer.trackingVersion != e.atTrackingVersion {
			delete(n.liveConsumers, id)
			if alive {
				delete(consumer.producers, n.id)
			}
			continue
		}
		consumer.hooks.onConsumerDependencyMayHaveChanged()
	}
}

// producerPollStatus reports whether the value of n moved past lastSeen,
// giving n a chance to bring itself up to date first.
func (n *ReactiveNode) producerPollStatus(lastSeen uint64) bool {
	if n.valueVersion != lastSeen {
		return true
	}
	n.hooks.onProducerUpdateValueVersion()
	return n.valueVersion != lastSeen
}

// consumerPollProducersForChange reports whether any dependency recorded
// during the latest evaluation of n has changed since it was read.
func (n *ReactiveNode) consumerPollProducersForChange() bool {
	for _, id := range slices.Sorted(maps.Keys(n.producers)) {
		e, ok := n.producers[id]
		if !ok {
			continue
		}
		if e.atTrackingVersion != n.trackingVersion {
			delete(n.producers, id)
			delete(e.producer.liveConsumers, n.id)
			continue
		}
		if e.producer.producerPollStatus(e.seenValueVersion) {
			return true
		}
	}
	return false
}

// detach removes every edge in which n takes part.
func (n *ReactiveNode) detach() {
	for id, e := range n.producers {
		delete(e.producer.liveConsumers, n.id)
		delete(n.producers, id)
	}
	for id := range n.liveConsumers {
		if consumer, ok := n.rs.nodes[id]; ok {
			delete(consumer.producers, n.id)
		}
		delete(n.liveConsumers, id)
	}
}
