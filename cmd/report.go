package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/desksim/sim"
	"github.com/inference-sim/desksim/sim/trace"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// outputOptions selects how search results and the event log are reported.
type outputOptions struct {
	Format       string
	TraceFile    string
	TraceSummary bool
}

// reporter renders search results as they complete.
type reporter interface {
	Run(res sim.RunResult) error
	Summary(s *sim.SearchSummary) error
	Trace(ts *trace.TraceSummary) error
}

func newReporter(format string, w io.Writer) (reporter, error) {
	switch format {
	case formatText:
		return &textReporter{w: w}, nil
	case formatJSON:
		return &jsonReporter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q; valid: %s, %s", format, formatText, formatJSON)
	}
}

// runSearch executes the search for cfg and streams one line per completed run
// to out, followed by the summary.
func runSearch(cfg sim.Config, opts outputOptions, out io.Writer) error {
	rep, err := newReporter(opts.Format, out)
	if err != nil {
		return err
	}

	sinks := trace.MultiSink{sim.LogSink{}}
	var jsonl *trace.JSONLSink
	if opts.TraceFile != "" {
		f, err := os.Create(opts.TraceFile)
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		defer f.Close()
		buf := bufio.NewWriter(f)
		defer func() {
			if err := buf.Flush(); err != nil {
				logrus.Errorf("Flushing trace file: %v", err)
			}
		}()
		jsonl = trace.NewJSONLSink(buf)
		sinks = append(sinks, jsonl)
	}
	var st *trace.SimulationTrace
	if opts.TraceSummary {
		st = trace.NewSimulationTrace(trace.TraceLevelEntities)
		sinks = append(sinks, st)
	}

	search, err := sim.NewSearch(cfg, sim.WithSink(sinks))
	if err != nil {
		return err
	}
	logrus.Infof("Searching from %d desks with seed %d", search.Config().InitialDeskCount, search.Config().Seed)

	summary := &sim.SearchSummary{Runs: make([]sim.RunResult, 0)}
	for res, err := range search.Results() {
		if err != nil {
			return err
		}
		summary.Runs = append(summary.Runs, res)
		if err := rep.Run(res); err != nil {
			return fmt.Errorf("writing run result: %w", err)
		}
	}
	summary.MinimalDeskCount = summary.Runs[len(summary.Runs)-1].DeskCount
	logrus.Infof("Required number of desks: %d", summary.MinimalDeskCount)
	if err := rep.Summary(summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if jsonl != nil && jsonl.Err() != nil {
		return fmt.Errorf("writing trace file: %w", jsonl.Err())
	}
	if st != nil {
		if err := rep.Trace(trace.Summarize(st)); err != nil {
			return fmt.Errorf("writing trace summary: %w", err)
		}
	}
	return nil
}

type textReporter struct {
	w io.Writer
}

func (r *textReporter) Run(res sim.RunResult) error {
	_, err := fmt.Fprintf(r.w, "Desks: %3d | Stop: %-24s | Avg wait: %7.2f | Max wait: %4d | End tick: %5d | Served: %5d | Abandoned: %3d\n",
		res.DeskCount, res.StopCause, res.AvgWait, res.MaxWait, res.EndClock, res.Served, res.Abandoned)
	return err
}

func (r *textReporter) Summary(s *sim.SearchSummary) error {
	_, err := fmt.Fprintf(r.w, "Required number of desks: %d (after %d runs)\n", s.MinimalDeskCount, len(s.Runs))
	return err
}

func (r *textReporter) Trace(ts *trace.TraceSummary) error {
	if _, err := fmt.Fprintf(r.w, "=== Event Log Summary ===\nRecords: %d across %d runs\n", ts.TotalRecords, ts.Runs); err != nil {
		return err
	}
	for _, kind := range slices.Sorted(maps.Keys(ts.KindCounts)) {
		if _, err := fmt.Fprintf(r.w, "  %-24s %d\n", kind, ts.KindCounts[kind]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "Mean wait: %.2f | Max wait: %d | Max queue length: %d\n",
		ts.MeanWaitingTime, ts.MaxWaitingTime, ts.MaxQueueLength)
	return err
}

// jsonReporter writes one JSON object per line.
type jsonReporter struct {
	enc *json.Encoder
}

func (r *jsonReporter) Run(res sim.RunResult) error {
	return r.enc.Encode(res)
}

func (r *jsonReporter) Summary(s *sim.SearchSummary) error {
	return r.enc.Encode(struct {
		MinimalDeskCount int `json:"minimal_successful_desk_count"`
		Runs             int `json:"runs"`
	}{s.MinimalDeskCount, len(s.Runs)})
}

func (r *jsonReporter) Trace(ts *trace.TraceSummary) error {
	return r.enc.Encode(struct {
		TraceSummary *trace.TraceSummary `json:"trace_summary"`
	}{ts})
}
