package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/desksim/sim/trace"
	"github.com/inference-sim/desksim/sim/workload"
)

// PatientSource supplies the random part of the arrival stream.
// NextPatient is called once per arrival, followed by NextInterarrival.
type PatientSource interface {
	NextPatient() workload.PatientDraw
	NextInterarrival() int64
}

// RunState is the per-run aggregate. It is constructed fresh for every run
// and never shared between runs.
type RunState struct {
	WaitingLine  *WaitingLine
	WaitingTimes []int64
	StopCause    StopCause
}

// RunResult is the record a completed run reports to the search.
type RunResult struct {
	DeskCount int       `json:"desk_count"`
	AvgWait   float64   `json:"avg_wait_time"`
	StopCause StopCause `json:"stop_cause"`

	MaxWait   int64 `json:"max_wait_time"`
	EndClock  int64 `json:"end_clock"`
	Arrived   int   `json:"arrived"`   // patients that joined the waiting line
	Served    int   `json:"served"`    // patients granted a desk
	Departed  int   `json:"departed"`  // patients that released their desk
	Abandoned int   `json:"abandoned"` // created patients that never departed
}

// run wires one simulation: scheduler, desks, monitor and the arrival stream.
// Everything here is discarded when the run returns.
type run struct {
	cfg     *Config
	desks   int
	sched   *Scheduler
	pool    *PriorityResourcePool
	state   *RunState
	monitor *TerminationMonitor
	source  PatientSource
	sink    trace.Sink
	stop    StopSignal

	patients []*Patient
	nextID   int
	err      error // first internal failure; aborts the run like a stop cause
}

func newRun(cfg *Config, desks int, source PatientSource, sink trace.Sink) (*run, error) {
	if source == nil {
		return nil, fmt.Errorf("run requires a patient source")
	}
	if sink == nil {
		sink = trace.Discard
	}
	sched := NewScheduler()
	pool, err := NewPriorityResourcePool(sched, desks)
	if err != nil {
		return nil, err
	}
	r := &run{
		cfg:    cfg,
		desks:  desks,
		sched:  sched,
		pool:   pool,
		state:  &RunState{WaitingLine: &WaitingLine{}, WaitingTimes: make([]int64, 0), StopCause: StopNone},
		source: source,
		sink:   sink,
	}
	r.monitor = newTerminationMonitor(cfg, &r.stop, sink, r.snapshot)
	return r, nil
}

// execute starts the arrival generator at tick 0 and drives the scheduler
// until the monitor stops the run.
func (r *run) execute() (RunResult, error) {
	gen := &ArrivalGenerator{r: r}
	if err := r.sched.ScheduleAfter(0, gen.cycle); err != nil {
		return RunResult{}, err
	}
	if err := r.sched.RunUntil(&r.stop); err != nil {
		return RunResult{}, fmt.Errorf("run with %d desks: %w", r.desks, err)
	}
	if r.err != nil {
		return RunResult{}, fmt.Errorf("run with %d desks: %w", r.desks, r.err)
	}
	r.state.StopCause = r.monitor.Cause()
	return r.result(), nil
}

// fail records an internal error and aborts the run.
func (r *run) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.stop.Raise()
}

// stopped reports whether continuations should bail out without effects.
func (r *run) stopped() bool {
	return r.stop.Raised()
}

func (r *run) nextPatientID() int {
	r.nextID++
	return r.nextID
}

// snapshot returns the run-level fields shared by every trace record.
func (r *run) snapshot() trace.Record {
	return trace.Record{
		RunDesks:    r.desks,
		Clock:       r.sched.Now(),
		QueueLength: r.state.WaitingLine.Len(),
		DesksBusy:   r.pool.Occupied(),
	}
}

// emit sends a patient transition record to the sink.
func (r *run) emit(kind trace.Kind, p *Patient) {
	rec := r.snapshot()
	rec.Kind = kind
	rec.EntityID = p.ID
	rec.Priority = p.Priority
	rec.AllowedWait = p.AllowedWait
	rec.ServiceDuration = p.ServiceDuration
	if kind != trace.KindArrival {
		rec.WaitingTime = p.WaitingTime()
	}
	r.sink.Record(rec)
}

// result aggregates the run. Patients still waiting or in service when the
// run stopped are counted as Abandoned: their desks are never released.
func (r *run) result() RunResult {
	res := RunResult{
		DeskCount: r.desks,
		StopCause: r.state.StopCause,
		EndClock:  r.sched.Now(),
	}
	for _, p := range r.patients {
		switch p.State {
		case StateCreated:
			res.Abandoned++
		case StateArrived, StateQueued:
			res.Arrived++
			res.Abandoned++
		case StateInService:
			res.Arrived++
			res.Served++
			res.Abandoned++
		case StateDeparted:
			res.Arrived++
			res.Served++
			res.Departed++
		}
	}
	if len(r.state.WaitingTimes) > 0 {
		waits := make([]float64, len(r.state.WaitingTimes))
		for i, w := range r.state.WaitingTimes {
			waits[i] = float64(w)
		}
		res.AvgWait = stat.Mean(waits, nil)
		res.MaxWait = int64(floats.Max(waits))
	}
	logrus.Infof("[tick %07d] run with %d desks stopped: %s (avg wait %.2f, served %d, abandoned %d)",
		res.EndClock, res.DeskCount, res.StopCause, res.AvgWait, res.Served, res.Abandoned)
	return res
}
