package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords    int          `json:"total_records"`
	KindCounts      map[Kind]int `json:"kind_counts"`
	Runs            int          `json:"runs"`              // distinct desk counts seen
	MeanWaitingTime float64      `json:"mean_waiting_time"` // over service_start records
	MaxWaitingTime  int64        `json:"max_waiting_time"`
	MaxQueueLength  int          `json:"max_queue_length"`
	StopsByRunDesks map[int]Kind `json:"stops_by_run_desks"` // desk count → stop kind observed for that run
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts:      make(map[Kind]int),
		StopsByRunDesks: make(map[int]Kind),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	runs := make(map[int]bool)
	var waitSum int64
	for _, r := range st.Records {
		summary.KindCounts[r.Kind]++
		runs[r.RunDesks] = true
		if r.QueueLength > summary.MaxQueueLength {
			summary.MaxQueueLength = r.QueueLength
		}
		if r.Kind == KindServiceStart {
			waitSum += r.WaitingTime
			if r.WaitingTime > summary.MaxWaitingTime {
				summary.MaxWaitingTime = r.WaitingTime
			}
		}
		if r.Kind.IsStop() {
			summary.StopsByRunDesks[r.RunDesks] = r.Kind
		}
	}
	summary.Runs = len(runs)
	if n := summary.KindCounts[KindServiceStart]; n > 0 {
		summary.MeanWaitingTime = float64(waitSum) / float64(n)
	}
	return summary
}
