package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEntities captures every patient transition and stop detection.
	TraceLevelEntities TraceLevel = "entities"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelEntities: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Sink consumes event-log records in the order they happen.
type Sink interface {
	Record(r Record)
}

// Discard is a Sink that drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(Record) {}

// MultiSink fans every record out to each non-nil sink in order.
type MultiSink []Sink

func (m MultiSink) Record(r Record) {
	for _, s := range m {
		if s != nil {
			s.Record(r)
		}
	}
}

// SimulationTrace collects records in memory.
type SimulationTrace struct {
	Level   TraceLevel
	Records []Record
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:   level,
		Records: make([]Record, 0),
	}
}

// Record appends r unless tracing is disabled.
func (st *SimulationTrace) Record(r Record) {
	if st.Level == TraceLevelNone || st.Level == "" {
		return
	}
	st.Records = append(st.Records, r)
}

// ForRun returns the records of the run with the given desk count.
func (st *SimulationTrace) ForRun(desks int) []Record {
	var out []Record
	for _, r := range st.Records {
		if r.RunDesks == desks {
			out = append(out, r)
		}
	}
	return out
}
