package reactive

type effectOptions struct {
	allowSignalWrites bool
}

type EffectOption func(o *effectOptions)

// WithAllowSignalWrites lets the effect write to signals. Effects that
// synchronize state through signals are easy to get wrong, so this is off
// by default.
func WithAllowSignalWrites() EffectOption {
	return func(o *effectOptions) {
		o.allowSignalWrites = true
	}
}

// EffectRef is a handle on a live effect.
type EffectRef struct {
	rs    *ReactiveSystem
	watch *Watch
}

// Effect runs fn on the next drain of the system's queue and again after
// any signal it read changes. Writes made in the same turn are coalesced
// into a single run.
func Effect(rs *ReactiveSystem, fn WatchFunc, opts ...EffectOption) *EffectRef {
	o := effectOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	w := NewWatch(rs, fn, rs.queueWatch, o.allowSignalWrites)
	rs.liveEffects.Add(w)
	w.Notify()

	return &EffectRef{rs: rs, watch: w}
}

func (e *EffectRef) ID() string {
	return e.watch.ID()
}

// Destroy shuts the effect down and removes it from upcoming drains.
func (e *EffectRef) Destroy() {
	e.rs.removeEffect(e.watch)
	e.watch.Dispose()
}

// ResetEffects shuts down every live effect without running cleanups.
func (rs *ReactiveSystem) ResetEffects() {
	rs.liveEffects.Each(func(w *Watch) bool {
		rs.unregister(w.node)
		return false
	})
	rs.liveEffects.Clear()
	rs.queued.Clear()
	rs.pending = nil
}

func (rs *ReactiveSystem) LiveEffects() int {
	return rs.liveEffects.Cardinality()
}

func (rs *ReactiveSystem) removeEffect(w *Watch) {
	rs.liveEffects.Remove(w)
	if rs.queued.Contains(w) {
		rs.queued.Remove(w)
		for i, p := range rs.pending {
			if p == w {
				rs.pending = append(rs.pending[:i], rs.pending[i+1:]...)
				break
			}
		}
	}
}

func (rs *ReactiveSystem) queueWatch(w *Watch) {
	if rs.queued.Contains(w) || !rs.liveEffects.Contains(w) {
		return
	}
	rs.queued.Add(w)
	rs.pending = append(rs.pending, w)

	if !rs.drainScheduled {
		rs.drainScheduled = true
		rs.scheduler.Schedule(rs.drain)
	}
}

// drain runs the effects queued so far. Effects queued while draining run
// in the next drain.
func (rs *ReactiveSystem) drain() {
	batch := rs.pending
	rs.pending = nil

	ran := 0
	for _, w := range batch {
		if !rs.queued.Contains(w) {
			continue
		}
		rs.queued.Remove(w)
		err := w.Run()
		rs.observer.EffectRan(w.id, err)
		if err != nil {
			rs.onError(w.id, err)
		}
		ran++
	}

	rs.drainScheduled = false
	rs.observer.DrainCompleted(ran)
	if len(rs.pending) > 0 {
		rs.drainScheduled = true
		rs.scheduler.Schedule(rs.drain)
	}
}
