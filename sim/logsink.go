package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/desksim/sim/trace"
)

// LogSink writes every trace record to logrus as structured fields.
// Patient transitions go to Debug, stop detections to Info.
type LogSink struct{}

func (LogSink) Record(r trace.Record) {
	level := logrus.DebugLevel
	if r.Kind.IsStop() {
		level = logrus.InfoLevel
	}
	if !logrus.IsLevelEnabled(level) {
		return
	}
	fields := logrus.Fields{
		"desks": r.RunDesks,
		"tick":  r.Clock,
		"queue": r.QueueLength,
		"busy":  r.DesksBusy,
	}
	if r.EntityID != 0 {
		fields["patient"] = r.EntityID
		fields["priority"] = r.Priority
	}
	switch r.Kind {
	case trace.KindArrival:
		fields["service"] = r.ServiceDuration
		fields["allowed_wait"] = r.AllowedWait
	case trace.KindServiceStart, trace.KindDeparture, trace.KindWaitTimeExceeded:
		fields["waited"] = r.WaitingTime
	}
	logrus.WithFields(fields).Log(level, string(r.Kind))
}
