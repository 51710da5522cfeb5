package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestSearchStreams_SameSeed_SameDraws(t *testing.T) {
	for _, reseed := range []bool{false, true} {
		a := NewSearchStreams(10).ForRun(2, reseed)
		b := NewSearchStreams(10).ForRun(2, reseed)
		for i := 0; i < 3; i++ {
			if x, y := a.Float64(), b.Float64(); x != y {
				t.Errorf("reseed=%v value %d: got %v and %v, want identical", reseed, i, x, y)
			}
		}
	}
}

func TestSearchStreams_SharedStreamUsesMasterSeed(t *testing.T) {
	// GIVEN the shared stream and a plain generator with the same seed
	shared := NewSearchStreams(10).ForRun(1, false)
	direct := rand.New(rand.NewSource(10))

	// THEN they draw identical values
	for i := 0; i < 10; i++ {
		if got, want := shared.Float64(), direct.Float64(); got != want {
			t.Errorf("value %d: shared stream = %v, direct = %v", i, got, want)
		}
	}
}

func TestSearchStreams_SharedStreamContinuesAcrossRuns(t *testing.T) {
	// GIVEN one draw consumed by the run with one desk
	streams := NewSearchStreams(10)
	first := streams.ForRun(1, false)
	first.Float64()

	// WHEN the run with two desks asks for its stream
	second := streams.ForRun(2, false)

	// THEN it continues with the second draw of the same stream
	if first != second {
		t.Fatal("shared stream: got different instances for different desk counts")
	}
	direct := rand.New(rand.NewSource(10))
	direct.Float64()
	if second.Float64() != direct.Float64() {
		t.Error("shared stream restarted instead of continuing")
	}
}

func TestSearchStreams_PerRunStreamsAreIsolated(t *testing.T) {
	// GIVEN draws from the one-desk stream
	streams := NewSearchStreams(10)
	for i := 0; i < 10; i++ {
		streams.ForRun(1, true).Float64()
	}

	// WHEN the two-desk stream is used for the first time
	got := streams.ForRun(2, true).Float64()

	// THEN it starts at the beginning of its own sequence
	want := NewSearchStreams(10).ForRun(2, true).Float64()
	if got != want {
		t.Errorf("run_2 first value = %v, want %v (isolation broken)", got, want)
	}
	if streams.ForRun(1, true) == streams.ForRun(2, true) {
		t.Error("per-run streams share an instance")
	}
}

func TestSearchStreams_ExtremeSeeds(t *testing.T) {
	for _, seed := range []int64{0, -1, math.MaxInt64, math.MinInt64} {
		streams := NewSearchStreams(seed)
		if streams.Seed() != seed {
			t.Errorf("Seed() = %d, want %d", streams.Seed(), seed)
		}
		if v := streams.ForRun(3, true).Float64(); v < 0 || v >= 1 {
			t.Errorf("seed %d: Float64() = %v, want [0, 1)", seed, v)
		}
	}
}

func TestDeriveSeed_NoCollisionAmongRunStreams(t *testing.T) {
	seen := map[int64]string{deriveSeed(10, streamWorkload): streamWorkload}
	for d := 1; d <= 50; d++ {
		name := runStreamName(d)
		s := deriveSeed(10, name)
		if existing, ok := seen[s]; ok {
			t.Errorf("seed collision: %q and %q both derive %d", name, existing, s)
		}
		seen[s] = name
	}
}

func TestRunStreamName(t *testing.T) {
	tests := []struct {
		desks int
		want  string
	}{
		{1, "run_1"},
		{7, "run_7"},
		{100, "run_100"},
	}
	for _, tt := range tests {
		if got := runStreamName(tt.desks); got != tt.want {
			t.Errorf("runStreamName(%d) = %q, want %q", tt.desks, got, tt.want)
		}
	}
}
