package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// streamWorkload is the stream shared by every run of a search unless
// reseed_per_run is set. It is seeded with the master seed itself, so --seed
// maps one-to-one onto the draws of the first run.
const streamWorkload = "workload"

// runStreamName names the private stream of the run with the given desk count.
func runStreamName(desks int) string {
	return fmt.Sprintf("run_%d", desks)
}

// SearchStreams hands out the seeded random streams of one search. Two
// SearchStreams built from the same seed hand out identical streams.
//
// A stream handed out twice is the same *rand.Rand and continues where it
// left off. Not safe for concurrent use.
type SearchStreams struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewSearchStreams creates the streams of a search seeded with seed.
func NewSearchStreams(seed int64) *SearchStreams {
	return &SearchStreams{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// Seed returns the master seed.
func (s *SearchStreams) Seed() int64 {
	return s.seed
}

// ForRun returns the stream the run with desks desks draws from: the shared
// workload stream, or with reseedPerRun a stream of its own.
func (s *SearchStreams) ForRun(desks int, reseedPerRun bool) *rand.Rand {
	if reseedPerRun {
		return s.stream(runStreamName(desks))
	}
	return s.stream(streamWorkload)
}

func (s *SearchStreams) stream(name string) *rand.Rand {
	if rng, ok := s.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(deriveSeed(s.seed, name)))
	s.streams[name] = rng
	return rng
}

// deriveSeed mixes the master seed with the FNV-1a hash of the stream name.
func deriveSeed(seed int64, name string) int64 {
	if name == streamWorkload {
		return seed
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ int64(h.Sum64())
}
