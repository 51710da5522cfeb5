package sim

// Continuation is the remainder of a suspended process. It runs exactly once,
// when the event that carries it is popped by the Scheduler.
type Continuation func()

// Event is a scheduled resumption of a suspended process.
// Events are ordered by (due, seq); seq is assigned by the Scheduler at
// insertion time so that events due at the same tick run in FIFO order.
type Event struct {
	due int64        // Virtual time at which the continuation runs
	seq uint64       // Insertion order, breaks ties between equal due times
	fn  Continuation // Work to run when the event fires
}

