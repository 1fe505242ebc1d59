package reactive

// Untracked runs fn without an active consumer so that nothing read inside
// it becomes a dependency.
func Untracked[T any](rs *ReactiveSystem, fn func() T) T {
	prev := rs.setActiveConsumer(nil)
	defer rs.setActiveConsumer(prev)
	return fn()
}
