package effect

// Scheduler runs deferred work on a later tick of the owning event loop.
type Scheduler interface {
	Defer(fn func())
}

// Queue is a FIFO Scheduler driven by its owner. One Flush is one tick.
type Queue struct {
	jobs []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Defer appends fn to the queue.
func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.jobs = append(q.jobs, fn)
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Flush runs the jobs queued before the call and returns how many ran.
// Jobs deferred while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	jobs := q.jobs
	q.jobs = nil
	for _, fn := range jobs {
		fn()
	}
	return len(jobs)
}

// Drain flushes until the queue stays empty, bounded by maxTicks.
func (q *Queue) Drain(maxTicks int) int {
	total := 0
	for i := 0; i < maxTicks && q.Len() > 0; i++ {
		total += q.Flush()
	}
	return total
}
