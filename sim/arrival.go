package sim

import (
	"fmt"
)

// ArrivalGenerator creates one patient per cycle and reschedules itself
// after a random interarrival gap, forever, until the run stops.
type ArrivalGenerator struct {
	r *run
}

// cycle is one activation of the generator:
// create patient, spawn its process, draw the gap, check the horizon, sleep.
// The horizon is checked here so that it is noticed even when no patient
// transition happens for a while.
func (g *ArrivalGenerator) cycle() {
	r := g.r
	if r.stopped() {
		return
	}
	draw := r.source.NextPatient()
	p, err := NewPatient(r.nextPatientID(), draw.Priority, draw.ServiceDuration, r.cfg)
	if err != nil {
		r.fail(err)
		return
	}
	r.patients = append(r.patients, p)
	proc := newPatientProcess(r, p)
	if err := r.sched.ScheduleAfter(0, proc.arrive); err != nil {
		r.fail(err)
		return
	}

	delay := r.source.NextInterarrival()
	if r.monitor.CheckHorizon(r.sched.Now()) {
		return
	}
	if err := r.sched.ScheduleAfter(delay, g.cycle); err != nil {
		r.fail(fmt.Errorf("interarrival gap: %w", err))
	}
}
