package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// eventQueue implements heap.Interface and orders events by (due, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []*Event

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].due != eq[j].due {
		return eq[i].due < eq[j].due
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*Event))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// StopSignal is raised once to end a run. The Scheduler checks it after
// every continuation, so the continuation that raises it always finishes.
type StopSignal struct {
	raised bool
}

// Raise sets the signal. Raising an already raised signal is a no-op.
func (s *StopSignal) Raise() {
	s.raised = true
}

// Raised reports whether the signal has been raised.
func (s *StopSignal) Raised() bool {
	return s.raised
}

// Scheduler is the virtual-time event loop of a single run.
// It owns the simulation clock: only RunUntil advances it.
//
// Thread-safety: NOT thread-safe. A Scheduler and everything scheduled on it
// must be driven from a single goroutine.
type Scheduler struct {
	clock   int64
	nextSeq uint64
	queue   eventQueue
}

// NewScheduler returns a Scheduler with its clock at zero and no pending events.
func NewScheduler() *Scheduler {
	s := &Scheduler{queue: make(eventQueue, 0)}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() int64 {
	return s.clock
}

// Pending returns the number of events not yet executed.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// ScheduleAfter registers fn to run at Now()+delay.
func (s *Scheduler) ScheduleAfter(delay int64, fn Continuation) error {
	if delay < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}
	if fn == nil {
		return fmt.Errorf("ScheduleAfter: continuation must not be nil")
	}
	s.nextSeq++
	heap.Push(&s.queue, &Event{due: s.clock + delay, seq: s.nextSeq, fn: fn})
	return nil
}

// RunUntil executes events in (due, seq) order until stop is raised.
// Events still queued when stop is raised are never executed.
// Running out of events before stop is raised is reported as
// ErrEventQueueExhausted, since such a run would otherwise end silently.
func (s *Scheduler) RunUntil(stop *StopSignal) error {
	for !stop.Raised() {
		if s.queue.Len() == 0 {
			return fmt.Errorf("%w at tick %d", ErrEventQueueExhausted, s.clock)
		}
		ev := heap.Pop(&s.queue).(*Event)
		// The clock is monotonic; an earlier event here means heap corruption.
		if ev.due < s.clock {
			panic(fmt.Sprintf("event due at %d popped after clock reached %d", ev.due, s.clock))
		}
		s.clock = ev.due
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("[tick %07d] executing event #%d", s.clock, ev.seq)
		}
		ev.fn()
	}
	return nil
}
