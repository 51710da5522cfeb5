package sim

import "errors"

var (
	// ErrInvalidDelay is returned when an event is scheduled in the past.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrInvalidConfig wraps every configuration validation failure.
	// Configuration errors abort a search before its first run.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidHandle is returned by Release for nil or already-released grants.
	ErrInvalidHandle = errors.New("invalid grant handle")

	// ErrEventQueueExhausted means a run drained its event queue without
	// raising the stop signal. With an arrival generator that always
	// reschedules itself this indicates a kernel bug, not a run outcome.
	ErrEventQueueExhausted = errors.New("event queue exhausted before stop signal")

	// ErrDeskLimitReached is returned when the search exceeds max_desk_count.
	ErrDeskLimitReached = errors.New("desk limit reached without a successful run")
)
