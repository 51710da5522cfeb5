package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/desksim/sim/trace"
)

func newTracedRun(t *testing.T, cfg Config, desks int, source PatientSource) (*run, *trace.SimulationTrace) {
	t.Helper()
	st := trace.NewSimulationTrace(trace.TraceLevelEntities)
	r, err := newRun(&cfg, desks, source, st)
	require.NoError(t, err)
	return r, st
}

func kinds(records []trace.Record) []trace.Kind {
	out := make([]trace.Kind, len(records))
	for i, r := range records {
		out[i] = r.Kind
	}
	return out
}

func TestRun_UrgentPatientWaitsBehindNonPreemptedDesk(t *testing.T) {
	// GIVEN one desk, a priority-3 patient at t=0 needing 10 ticks and a
	// priority-1 patient at t=2 needing 5 ticks
	cfg := testConfig(5)
	source := newScriptedSource(100,
		scriptedArrival{priority: 3, service: 10, gap: 2},
		scriptedArrival{priority: 1, service: 5, gap: 100},
	)
	r, st := newTracedRun(t, cfg, 1, source)

	// WHEN the run executes
	res, err := r.execute()
	require.NoError(t, err)

	// THEN the second patient gets the desk at t=10 after waiting 8 > 1
	assert.Equal(t, StopWaitTimeExceeded, res.StopCause)
	assert.Equal(t, int64(10), res.EndClock)
	assert.Equal(t, []int64{0, 8}, r.state.WaitingTimes)
	assert.InDelta(t, 4.0, res.AvgWait, 1e-9)
	assert.Equal(t, int64(8), res.MaxWait)

	assert.Equal(t, []trace.Kind{
		trace.KindArrival,
		trace.KindServiceStart,
		trace.KindArrival,
		trace.KindDeparture,
		trace.KindServiceStart,
		trace.KindWaitTimeExceeded,
	}, kinds(st.Records))
	grantE2 := st.Records[4]
	assert.Equal(t, 2, grantE2.EntityID)
	assert.Equal(t, int64(10), grantE2.Clock)
	assert.Equal(t, int64(1), grantE2.AllowedWait)

	// The second patient never departs: the run stopped while it held the desk
	assert.Equal(t, 2, res.Arrived)
	assert.Equal(t, 2, res.Served)
	assert.Equal(t, 1, res.Departed)
	assert.Equal(t, 1, res.Abandoned)
}

func TestRun_QueueOverflowStopsBeforeAnyServiceCheck(t *testing.T) {
	// GIVEN a single desk held for the whole run and a line capacity of 2
	cfg := testConfig(2)
	source := newScriptedSource(1,
		scriptedArrival{priority: 1, service: 50, gap: 1},
		scriptedArrival{priority: 1, service: 50, gap: 1},
		scriptedArrival{priority: 1, service: 50, gap: 1},
	)
	r, st := newTracedRun(t, cfg, 1, source)
	r.pool.Request(0, 1, func(*Grant) {})
	require.Equal(t, 1, r.pool.Occupied())

	// WHEN three patients arrive at t=0, 1 and 2
	res, err := r.execute()
	require.NoError(t, err)

	// THEN the third arrival overflows the line at t=2
	assert.Equal(t, StopQueueCapacityExceeded, res.StopCause)
	assert.Equal(t, int64(2), res.EndClock)
	assert.Empty(t, recordsOfKind(st, trace.KindServiceStart))
	stops := recordsOfKind(st, trace.KindQueueCapacityExceeded)
	require.Len(t, stops, 1)
	assert.Equal(t, 3, stops[0].EntityID)
	assert.Equal(t, 3, stops[0].QueueLength)

	// Nobody was served, so there is no waiting time to average
	assert.Equal(t, 3, res.Arrived)
	assert.Equal(t, 0, res.Served)
	assert.Equal(t, 3, res.Abandoned)
	assert.Equal(t, 0.0, res.AvgWait)
}

func TestRun_LightLoadSucceedsAtFirstCheckPastHorizon(t *testing.T) {
	// GIVEN plenty of desks and one short patient per tick
	cfg := testConfig(10)
	cfg.Horizon = 50
	r, st := newTracedRun(t, cfg, 5, newScriptedSource(1))

	// WHEN the run executes
	res, err := r.execute()
	require.NoError(t, err)

	// THEN it succeeds at the first cycle with now > 50
	assert.Equal(t, StopSuccess, res.StopCause)
	assert.Equal(t, int64(51), res.EndClock)
	assert.Equal(t, 0.0, res.AvgWait)
	assert.Equal(t, 51, res.Served)
	assert.Equal(t, 50, res.Departed)
	// Patient 51 is still at its desk and patient 52 was created but never arrived
	assert.Equal(t, 2, res.Abandoned)

	horizon := recordsOfKind(st, trace.KindHorizonReached)
	require.Len(t, horizon, 1)
	assert.Equal(t, int64(51), horizon[0].Clock)
}

func TestRun_ZeroQueueCapacity_FirstArrivalOverflows(t *testing.T) {
	// The arriving patient counts toward the line before it is granted a desk
	cfg := testConfig(0)
	r, _ := newTracedRun(t, cfg, 3, newScriptedSource(1))

	res, err := r.execute()
	require.NoError(t, err)

	assert.Equal(t, StopQueueCapacityExceeded, res.StopCause)
	assert.Equal(t, int64(0), res.EndClock)
}

func TestRun_RandomWorkload_InvariantsHold(t *testing.T) {
	// GIVEN a search over the default workload with a short horizon
	cfg := DefaultConfig()
	cfg.Horizon = 300
	st := trace.NewSimulationTrace(trace.TraceLevelEntities)
	search, err := NewSearch(cfg, WithSink(st))
	require.NoError(t, err)

	// WHEN it runs to completion
	summary, err := search.Run()
	require.NoError(t, err)

	// THEN every run respects its desk capacity and reports one stop
	for _, res := range summary.Runs {
		records := st.ForRun(res.DeskCount)
		require.NotEmpty(t, records, "desks=%d", res.DeskCount)
		stops := 0
		for _, rec := range records {
			assert.LessOrEqual(t, rec.DesksBusy, res.DeskCount, "desks=%d tick=%d", res.DeskCount, rec.Clock)
			assert.GreaterOrEqual(t, rec.WaitingTime, int64(0))
			if rec.Kind.IsStop() {
				stops++
			}
		}
		assert.Equal(t, 1, stops, "desks=%d", res.DeskCount)
		assert.True(t, records[len(records)-1].Kind.IsStop(), "the stop record ends the run")
		assert.GreaterOrEqual(t, res.AvgWait, 0.0)
		assert.LessOrEqual(t, res.Departed, res.Served)
		assert.LessOrEqual(t, res.Served, res.Arrived)
	}
}

func TestNewRun_InvalidInputs(t *testing.T) {
	cfg := testConfig(5)
	_, err := newRun(&cfg, 0, newScriptedSource(1), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = newRun(&cfg, 1, nil, nil)
	assert.Error(t, err)
}

func TestRun_InvalidDrawAbortsWithError(t *testing.T) {
	// GIVEN a source producing a priority outside the configured range
	cfg := testConfig(5)
	r, _ := newTracedRun(t, cfg, 1, newScriptedSource(1, scriptedArrival{priority: 42, service: 1, gap: 1}))

	// WHEN executed
	_, err := r.execute()

	// THEN the run aborts with the construction error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority 42")
}
