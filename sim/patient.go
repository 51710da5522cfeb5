// Defines the Patient record that moves through a single run.
// Tracks arrival, service start and departure stamps for waiting-time accounting.

package sim

import (
	"fmt"
)

// PatientState represents the lifecycle state of a patient.
type PatientState string

const (
	StateCreated   PatientState = "created"
	StateArrived   PatientState = "arrived"
	StateQueued    PatientState = "queued"
	StateInService PatientState = "in_service"
	StateDeparted  PatientState = "departed"
)

// Patient models a single unit of demand. Time stamps are only meaningful
// once the patient has reached the corresponding state.
type Patient struct {
	ID              int   // Sequential within a run, starting at 1
	Priority        int   // Urgency rank, lower = more urgent
	AllowedWait     int64 // Longest tolerated wait, derived from Priority
	ServiceDuration int64 // Ticks the patient occupies a desk (>= 1)

	State            PatientState
	ArrivalTime      int64 // Tick the patient joined the waiting line
	ServiceStartTime int64 // Tick a desk was granted
	DepartureTime    int64 // Tick the desk was released
}

// NewPatient validates the drawn attributes against cfg and derives the
// allowed wait from the priority.
func NewPatient(id, priority int, serviceDuration int64, cfg *Config) (*Patient, error) {
	if priority < cfg.PriorityMin || priority > cfg.PriorityMax {
		return nil, fmt.Errorf("patient %d: priority %d outside [%d, %d]", id, priority, cfg.PriorityMin, cfg.PriorityMax)
	}
	if serviceDuration < 1 {
		return nil, fmt.Errorf("patient %d: service duration must be >= 1, got %d", id, serviceDuration)
	}
	return &Patient{
		ID:              id,
		Priority:        priority,
		AllowedWait:     cfg.AllowedWait(priority),
		ServiceDuration: serviceDuration,
		State:           StateCreated,
	}, nil
}

// WaitingTime returns ServiceStartTime - ArrivalTime.
// Zero until the patient has been granted a desk.
func (p *Patient) WaitingTime() int64 {
	switch p.State {
	case StateInService, StateDeparted:
		return p.ServiceStartTime - p.ArrivalTime
	}
	return 0
}

// This method returns a human-readable string representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %d, Priority: %d, State: %s, ArrivalTime: %d)", p.ID, p.Priority, p.State, p.ArrivalTime)
}
