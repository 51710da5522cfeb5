package sim

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/desksim/sim/trace"
	"github.com/inference-sim/desksim/sim/workload"
)

// SourceFactory builds the patient source of one run from that run's stream.
type SourceFactory func(rng *rand.Rand) (PatientSource, error)

// SearchSummary is the outcome of a completed desk-count search.
type SearchSummary struct {
	MinimalDeskCount int         `json:"minimal_successful_desk_count"`
	Runs             []RunResult `json:"runs"`
}

// Search finds the smallest desk count whose run ends in StopSuccess,
// starting from InitialDeskCount and adding one desk after every failed run.
type Search struct {
	cfg     Config
	sink    trace.Sink
	factory SourceFactory
}

// SearchOption customizes a Search.
type SearchOption func(*Search)

// WithSink sends every patient transition and stop detection to sink.
func WithSink(sink trace.Sink) SearchOption {
	return func(s *Search) { s.sink = sink }
}

// WithSourceFactory replaces the random workload generator, e.g. with a
// scripted arrival stream.
func WithSourceFactory(f SourceFactory) SearchOption {
	return func(s *Search) { s.factory = f }
}

// NewSearch validates cfg and prepares a search. Configuration errors are
// reported here, before any run starts.
func NewSearch(cfg Config, opts ...SearchOption) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Search{cfg: cfg, sink: trace.Discard}
	s.factory = func(rng *rand.Rand) (PatientSource, error) {
		return workload.NewGenerator(rng, s.cfg.GeneratorSpec())
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = trace.Discard
	}
	if s.factory == nil {
		return nil, fmt.Errorf("%w: nil source factory", ErrInvalidConfig)
	}
	return s, nil
}

// Config returns the configuration the search runs with.
func (s *Search) Config() Config {
	return s.cfg
}

// Results lazily runs the search, yielding one RunResult per completed run.
// The sequence ends after the first successful run, or after yielding a
// non-nil error. Every call starts over from InitialDeskCount with a fresh
// random stream derived from the seed, so two iterations yield identical
// histories.
//
// By default a single stream continues across runs: the run with n+1 desks
// sees the draws that follow the ones consumed by the run with n desks. With
// ReseedPerRun each desk count gets its own stream.
func (s *Search) Results() iter.Seq2[RunResult, error] {
	return func(yield func(RunResult, error) bool) {
		streams := NewSearchStreams(s.cfg.Seed)
		for desks := s.cfg.InitialDeskCount; ; desks++ {
			if s.cfg.MaxDeskCount > 0 && desks > s.cfg.MaxDeskCount {
				yield(RunResult{}, fmt.Errorf("%w: tried up to %d desks", ErrDeskLimitReached, s.cfg.MaxDeskCount))
				return
			}
			logrus.Infof("Starting run with %d desks", desks)

			res, err := s.runOnce(desks, streams.ForRun(desks, s.cfg.ReseedPerRun))
			if err != nil {
				yield(RunResult{}, err)
				return
			}
			if !yield(res, nil) {
				return
			}
			if res.StopCause == StopSuccess {
				return
			}
		}
	}
}

func (s *Search) runOnce(desks int, rng *rand.Rand) (RunResult, error) {
	source, err := s.factory(rng)
	if err != nil {
		return RunResult{}, fmt.Errorf("building patient source: %w", err)
	}
	r, err := newRun(&s.cfg, desks, source, s.sink)
	if err != nil {
		return RunResult{}, err
	}
	return r.execute()
}

// Run drains Results and returns the full history.
func (s *Search) Run() (*SearchSummary, error) {
	summary := &SearchSummary{Runs: make([]RunResult, 0)}
	for res, err := range s.Results() {
		if err != nil {
			return nil, err
		}
		summary.Runs = append(summary.Runs, res)
	}
	last := summary.Runs[len(summary.Runs)-1]
	summary.MinimalDeskCount = last.DeskCount
	logrus.Infof("Required number of desks: %d", summary.MinimalDeskCount)
	return summary, nil
}
