package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/desksim/sim/trace"
)

// StopCause is the terminal reason a run ended.
type StopCause string

const (
	StopNone                  StopCause = "none"
	StopWaitTimeExceeded      StopCause = "wait_time_exceeded"
	StopQueueCapacityExceeded StopCause = "queue_capacity_exceeded"
	StopSuccess               StopCause = "success"
)

// IsFailure reports whether the cause requires another desk.
func (c StopCause) IsFailure() bool {
	return c == StopWaitTimeExceeded || c == StopQueueCapacityExceeded
}

// TerminationMonitor evaluates the three stop conditions of a run and raises
// the run's StopSignal. Only the first condition observed is kept; a monitor
// that has already stopped ignores every later check.
type TerminationMonitor struct {
	queueCapacity int   // UnboundedQueue disables the capacity check
	horizon       int64 // success once the clock is strictly past this tick
	stop          *StopSignal
	sink          trace.Sink
	snapshot      func() trace.Record // run-level fields for emitted records

	cause     StopCause
	stoppedAt int64
}

func newTerminationMonitor(cfg *Config, stop *StopSignal, sink trace.Sink, snapshot func() trace.Record) *TerminationMonitor {
	return &TerminationMonitor{
		queueCapacity: cfg.QueueCapacity,
		horizon:       cfg.Horizon,
		stop:          stop,
		sink:          sink,
		snapshot:      snapshot,
		cause:         StopNone,
	}
}

// Cause returns the stop cause, StopNone while the run is still going.
func (m *TerminationMonitor) Cause() StopCause {
	return m.cause
}

// StoppedAt returns the tick at which the cause was raised.
func (m *TerminationMonitor) StoppedAt() int64 {
	return m.stoppedAt
}

// Stopped reports whether a stop cause has been raised.
func (m *TerminationMonitor) Stopped() bool {
	return m.cause != StopNone
}

// CheckWaitTime fails the run when p waited longer than it is allowed to.
// Called when p is granted a desk. Returns true when the run is stopped.
func (m *TerminationMonitor) CheckWaitTime(now int64, p *Patient) bool {
	if m.Stopped() {
		return true
	}
	if p.WaitingTime() <= p.AllowedWait {
		return false
	}
	rec := m.snapshot()
	rec.Kind = trace.KindWaitTimeExceeded
	rec.EntityID = p.ID
	rec.Priority = p.Priority
	rec.AllowedWait = p.AllowedWait
	rec.WaitingTime = p.WaitingTime()
	logrus.Infof("[tick %07d] patient %d waited %d, allowed %d", now, p.ID, p.WaitingTime(), p.AllowedWait)
	m.raise(now, StopWaitTimeExceeded, rec)
	return true
}

// CheckQueueCapacity fails the run when the waiting line is strictly longer
// than the configured capacity; a line exactly at capacity is allowed.
// Called right after entityID joins the line. Returns true when the run is stopped.
func (m *TerminationMonitor) CheckQueueCapacity(now int64, entityID, queueLen int) bool {
	if m.Stopped() {
		return true
	}
	if m.queueCapacity == UnboundedQueue || queueLen <= m.queueCapacity {
		return false
	}
	rec := m.snapshot()
	rec.Kind = trace.KindQueueCapacityExceeded
	rec.EntityID = entityID
	logrus.Infof("[tick %07d] waiting line reached %d, capacity %d", now, queueLen, m.queueCapacity)
	m.raise(now, StopQueueCapacityExceeded, rec)
	return true
}

// CheckHorizon ends the run successfully once now is past the horizon.
// Called once per arrival cycle. Returns true when the run is stopped.
func (m *TerminationMonitor) CheckHorizon(now int64) bool {
	if m.Stopped() {
		return true
	}
	if now <= m.horizon {
		return false
	}
	rec := m.snapshot()
	rec.Kind = trace.KindHorizonReached
	m.raise(now, StopSuccess, rec)
	return true
}

func (m *TerminationMonitor) raise(now int64, cause StopCause, rec trace.Record) {
	m.cause = cause
	m.stoppedAt = now
	m.stop.Raise()
	m.sink.Record(rec)
}
