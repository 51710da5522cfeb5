// Package sim provides the discrete-event kernel and the desk-count search.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - scheduler.go: virtual clock and the (due, seq) ordered event loop
//   - pool.go: priority-ordered, non-preemptive desk pool
//   - process.go: patient lifecycle (arrived → queued → in_service → departed)
//   - monitor.go: the three stop conditions and the first-wins stop signal
//   - search.go: the outer loop adding one desk per failed run
//
// # Execution model
//
// A run is single-threaded and cooperative. A process never blocks; each
// suspension point (interarrival gap, desk admission, service timeout) is a
// continuation registered with the Scheduler. Raising the stop signal aborts
// the whole run: events still queued are dropped and patients that hold a
// desk never release it.
//
// Every run owns a fresh Scheduler, PriorityResourcePool and RunState. Only the
// search, and by default the workload random stream, outlive a run.
//
// Sub-packages:
//   - sim/workload/: samplers and the random patient generator
//   - sim/trace/: event-log records and sinks
package sim
