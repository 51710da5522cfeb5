package sim

import (
	"github.com/inference-sim/desksim/sim/trace"
	"github.com/inference-sim/desksim/sim/workload"
)

// scriptedArrival is one patient of a scripted arrival stream together with
// the gap before the next arrival.
type scriptedArrival struct {
	priority int
	service  int64
	gap      int64
}

// scriptedSource replays a fixed arrival stream, bypassing randomness.
// Once the script is exhausted it keeps producing low-urgency patients
// with the given tail gap so the generator never stops on its own.
type scriptedSource struct {
	script  []scriptedArrival
	idx     int
	tailGap int64
}

func newScriptedSource(tailGap int64, script ...scriptedArrival) *scriptedSource {
	return &scriptedSource{script: script, tailGap: tailGap}
}

func (s *scriptedSource) current() (scriptedArrival, bool) {
	if s.idx < len(s.script) {
		return s.script[s.idx], true
	}
	return scriptedArrival{}, false
}

func (s *scriptedSource) NextPatient() workload.PatientDraw {
	if a, ok := s.current(); ok {
		return workload.PatientDraw{Priority: a.priority, ServiceDuration: a.service}
	}
	return workload.PatientDraw{Priority: 10, ServiceDuration: 1}
}

func (s *scriptedSource) NextInterarrival() int64 {
	a, ok := s.current()
	s.idx++
	if ok {
		return a.gap
	}
	return s.tailGap
}

// testConfig returns a valid config with a large horizon and the given queue capacity.
func testConfig(queueCapacity int) Config {
	cfg := DefaultConfig()
	cfg.QueueCapacity = queueCapacity
	cfg.Horizon = 1000
	return cfg
}

// recordsOfKind filters a trace by kind.
func recordsOfKind(st *trace.SimulationTrace, kind trace.Kind) []trace.Record {
	var out []trace.Record
	for _, r := range st.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
