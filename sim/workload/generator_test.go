package workload

import (
	"math/rand"
	"testing"
)

func defaultSpec() GeneratorSpec {
	return GeneratorSpec{
		PriorityMin:  1,
		PriorityMax:  10,
		Service:      Exponential(15),
		Interarrival: Exponential(0.76),
	}
}

func TestGenerator_SameSeed_SameStream(t *testing.T) {
	g1, err := NewGenerator(rand.New(rand.NewSource(10)), defaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewGenerator(rand.New(rand.NewSource(10)), defaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		p1, p2 := g1.NextPatient(), g2.NextPatient()
		if p1 != p2 {
			t.Fatalf("draw %d: %+v != %+v", i, p1, p2)
		}
		if a, b := g1.NextInterarrival(), g2.NextInterarrival(); a != b {
			t.Fatalf("gap %d: %d != %d", i, a, b)
		}
	}
}

func TestGenerator_DrawsWithinBounds(t *testing.T) {
	g, err := NewGenerator(rand.New(rand.NewSource(10)), defaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5000; i++ {
		p := g.NextPatient()
		if p.Priority < 1 || p.Priority > 10 {
			t.Fatalf("priority %d outside [1, 10]", p.Priority)
		}
		if p.ServiceDuration < 1 {
			t.Fatalf("service duration %d < 1", p.ServiceDuration)
		}
		if gap := g.NextInterarrival(); gap < 1 {
			t.Fatalf("interarrival gap %d < 1", gap)
		}
	}
}

func TestGenerator_DrawOrder_PriorityServiceGap(t *testing.T) {
	// GIVEN the samplers driven by hand over a stream with the same seed
	rng := rand.New(rand.NewSource(10))
	priority, _ := NewUniformIntSampler(1, 10)
	service := &ExponentialSampler{mean: 15}
	gap := &ExponentialSampler{mean: 0.76}
	wantPriority := priority.Sample(rng)
	wantService := service.Sample(rng)
	wantGap := gap.Sample(rng)

	// WHEN the generator draws one cycle
	g, err := NewGenerator(rand.New(rand.NewSource(10)), defaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	p := g.NextPatient()
	got := g.NextInterarrival()

	// THEN it consumed the stream in the same order
	if int64(p.Priority) != wantPriority || p.ServiceDuration != wantService || got != wantGap {
		t.Errorf("got (%d, %d, %d), want (%d, %d, %d)",
			p.Priority, p.ServiceDuration, got, wantPriority, wantService, wantGap)
	}
}

func TestNewGenerator_Errors(t *testing.T) {
	if _, err := NewGenerator(nil, defaultSpec()); err == nil {
		t.Error("nil rng: expected error")
	}
	spec := defaultSpec()
	spec.PriorityMin, spec.PriorityMax = 5, 1
	if _, err := NewGenerator(rand.New(rand.NewSource(1)), spec); err == nil {
		t.Error("empty priority range: expected error")
	}
	spec = defaultSpec()
	spec.Service = DistSpec{Type: "bogus"}
	if _, err := NewGenerator(rand.New(rand.NewSource(1)), spec); err == nil {
		t.Error("bad service distribution: expected error")
	}
}
