package sim

import (
	"fmt"

	"github.com/inference-sim/desksim/sim/trace"
)

// patientProcess drives one Patient through
// created → arrived → queued → in_service → departed.
// Each suspension point is an explicit continuation: the pool resumes
// onGrant, the scheduler resumes depart after the service timeout.
// When the run stops, a suspended process is simply never resumed.
type patientProcess struct {
	r     *run
	p     *Patient
	grant *Grant
}

func newPatientProcess(r *run, p *Patient) *patientProcess {
	return &patientProcess{r: r, p: p}
}

// arrive moves the patient into the waiting line and asks for a desk.
func (pp *patientProcess) arrive() {
	r, p := pp.r, pp.p
	if r.stopped() {
		return
	}
	now := r.sched.Now()
	r.state.WaitingLine.Enqueue(p.ID)
	p.ArrivalTime = now
	p.State = StateArrived
	r.emit(trace.KindArrival, p)
	if r.monitor.CheckQueueCapacity(now, p.ID, r.state.WaitingLine.Len()) {
		return
	}

	p.State = StateQueued
	r.pool.Request(p.ID, p.Priority, pp.onGrant)
}

// onGrant starts service once a desk is handed over.
func (pp *patientProcess) onGrant(g *Grant) {
	r, p := pp.r, pp.p
	if r.stopped() {
		return
	}
	now := r.sched.Now()
	pp.grant = g
	p.ServiceStartTime = now
	p.State = StateInService
	r.state.WaitingTimes = append(r.state.WaitingTimes, p.WaitingTime())
	r.state.WaitingLine.Remove(p.ID)
	r.emit(trace.KindServiceStart, p)
	if r.monitor.CheckWaitTime(now, p) {
		return
	}
	if err := r.sched.ScheduleAfter(p.ServiceDuration, pp.depart); err != nil {
		r.fail(fmt.Errorf("patient %d: %w", p.ID, err))
	}
}

// depart releases the desk after the service timeout.
func (pp *patientProcess) depart() {
	r, p := pp.r, pp.p
	if r.stopped() {
		return
	}
	if err := r.pool.Release(pp.grant); err != nil {
		r.fail(fmt.Errorf("patient %d: %w", p.ID, err))
		return
	}
	p.DepartureTime = r.sched.Now()
	p.State = StateDeparted
	r.emit(trace.KindDeparture, p)
}
