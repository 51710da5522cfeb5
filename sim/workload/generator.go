package workload

import (
	"fmt"
	"math/rand"
)

// PatientDraw is the random part of a newly arriving patient.
type PatientDraw struct {
	Priority        int   // Urgency rank, lower = more urgent
	ServiceDuration int64 // Time the patient occupies a desk, >= 1
}

// GeneratorSpec describes the random arrival stream.
type GeneratorSpec struct {
	PriorityMin  int
	PriorityMax  int
	Service      DistSpec
	Interarrival DistSpec
}

// Generator draws patients and interarrival gaps from a single random stream.
// Draw order per cycle is priority, service duration, interarrival gap; callers
// that need reproducible runs must keep that order.
type Generator struct {
	rng          *rand.Rand
	priority     *UniformIntSampler
	service      DurationSampler
	interarrival DurationSampler
}

// NewGenerator builds a Generator over rng.
func NewGenerator(rng *rand.Rand, spec GeneratorSpec) (*Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("generator requires a random source")
	}
	priority, err := NewUniformIntSampler(int64(spec.PriorityMin), int64(spec.PriorityMax))
	if err != nil {
		return nil, fmt.Errorf("priority range: %w", err)
	}
	service, err := NewDurationSampler(spec.Service)
	if err != nil {
		return nil, fmt.Errorf("service distribution: %w", err)
	}
	interarrival, err := NewDurationSampler(spec.Interarrival)
	if err != nil {
		return nil, fmt.Errorf("interarrival distribution: %w", err)
	}
	return &Generator{
		rng:          rng,
		priority:     priority,
		service:      service,
		interarrival: interarrival,
	}, nil
}

// NextPatient draws the priority and service duration of the next patient.
func (g *Generator) NextPatient() PatientDraw {
	priority := int(g.priority.Sample(g.rng))
	service := g.service.Sample(g.rng)
	return PatientDraw{Priority: priority, ServiceDuration: service}
}

// NextInterarrival draws the gap before the next arrival.
func (g *Generator) NextInterarrival() int64 {
	return g.interarrival.Sample(g.rng)
}
