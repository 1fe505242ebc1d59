package reactive

// Scheduler defers a task to a later turn of the caller's loop. Tasks must
// never run synchronously inside Schedule since it is called while the graph
// is notifying consumers.
type Scheduler interface {
	Schedule(task func())
}

// Flusher is implemented by schedulers that can run their pending tasks on
// demand.
type Flusher interface {
	Flush() int
}

// MicrotaskQueue is a FIFO of deferred tasks run by Flush.
type MicrotaskQueue struct {
	tasks []func()
}

func (q *MicrotaskQueue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

func (q *MicrotaskQueue) Pending() int {
	return len(q.tasks)
}

// Flush runs tasks until the queue is empty, including tasks scheduled by
// the tasks themselves.
func (q *MicrotaskQueue) Flush() (ran int) {
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		task()
		ran++
	}
	return ran
}

// ChannelScheduler hands tasks to a goroutine owning the system, usually
// the one running an event loop that selects on C.
type ChannelScheduler struct {
	C chan func()
}

func NewChannelScheduler(buffer int) *ChannelScheduler {
	return &ChannelScheduler{C: make(chan func(), buffer)}
}

func (s *ChannelScheduler) Schedule(task func()) {
	s.C <- task
}
