// Package trace provides the event log of patient transitions and stop
// detections. This package has no dependencies on sim/ - it stores pure data
// types and leaves rendering to its consumers.
package trace

// Kind identifies what happened to a patient or to the run.
type Kind string

const (
	KindArrival               Kind = "arrival"
	KindServiceStart          Kind = "service_start"
	KindDeparture             Kind = "departure"
	KindWaitTimeExceeded      Kind = "wait_time_exceeded"
	KindQueueCapacityExceeded Kind = "queue_capacity_exceeded"
	KindHorizonReached        Kind = "horizon_reached"
)

// IsStop reports whether the kind ends a run.
func (k Kind) IsStop() bool {
	switch k {
	case KindWaitTimeExceeded, KindQueueCapacityExceeded, KindHorizonReached:
		return true
	}
	return false
}

// Record captures a single patient transition or stop detection.
// Fields that do not apply to a kind are left zero; EntityID is 0 for
// KindHorizonReached, which belongs to the run rather than a patient.
type Record struct {
	RunDesks        int   `json:"run_desks"`
	EntityID        int   `json:"entity_id"`
	Kind            Kind  `json:"kind"`
	Clock           int64 `json:"clock"`
	Priority        int   `json:"priority,omitempty"`
	AllowedWait     int64 `json:"allowed_wait,omitempty"`
	ServiceDuration int64 `json:"service_duration,omitempty"`
	WaitingTime     int64 `json:"waiting_time,omitempty"`
	QueueLength     int   `json:"queue_length"`
	DesksBusy       int   `json:"desks_busy"`
}
