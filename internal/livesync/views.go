package livesync

import (
	"context"
	"time"

	"github.com/portworks/craneview/internal/metrics"
	"github.com/portworks/craneview/internal/store"
)

// Names of the standard views a running process maintains.
const (
	ViewFleet     = "fleet_summary"
	ViewTrend     = "productivity_trend"
	ViewDelays    = "delay_breakdown"
	ViewRankings  = "operator_rankings"
	ViewOperators = "operator_overview"
	ViewVehicles  = "vehicles"
)

// Rolling window lengths, in days including today.
const (
	TrendWindowDays  = 7
	RatingWindowDays = 30
)

// DelaySnapshot is the published value of the delay view: the per-reason
// breakdown plus the daily trend over the same window.
type DelaySnapshot struct {
	Breakdown metrics.DelayBreakdown    `json:"breakdown"`
	Trend     []metrics.DelayTrendPoint `json:"trend"`
}

// ViewOpts tunes the standard views. The zero value uses the real clock and
// the default windows.
type ViewOpts struct {
	// Today returns the current date as YYYY-MM-DD. Defaults to the local
	// clock; tests pin it.
	Today func() string

	TrendDays  int
	RatingDays int
}

func (o *ViewOpts) fill() {
	if o.Today == nil {
		o.Today = func() string { return time.Now().Format("2006-01-02") }
	}
	if o.TrendDays <= 0 {
		o.TrendDays = TrendWindowDays
	}
	if o.RatingDays <= 0 {
		o.RatingDays = RatingWindowDays
	}
}

// windowStart returns the date days-1 before today, so [start, today] spans
// exactly days calendar days. Unparseable dates fall back to today.
func windowStart(today string, days int) string {
	t, err := time.Parse("2006-01-02", today)
	if err != nil {
		return today
	}
	return t.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
}

// BuildViews registers the standard set of live views over st. Views are
// created but not started; call Registry.Start.
func BuildViews(st *store.Store, opts ViewOpts) *Registry {
	opts.fill()
	reg := NewRegistry()

	liftDelayCols := []store.Collection{store.LiftLogs, store.DelayRecords, store.Profiles}

	reg.Register(New(ViewFleet, st, liftDelayCols, func(ctx context.Context) (any, error) {
		today := opts.Today()
		operators, err := st.OperatorProfiles(ctx)
		if err != nil {
			return nil, err
		}
		logs, err := st.LiftLogsInRange(ctx, today, today, nil)
		if err != nil {
			return nil, err
		}
		delays, err := st.DelaysInRange(ctx, today, today, nil)
		if err != nil {
			return nil, err
		}
		return metrics.SummarizeFleet(today, operators, logs, delays), nil
	}))

	reg.Register(New(ViewTrend, st, []store.Collection{store.LiftLogs}, func(ctx context.Context) (any, error) {
		today := opts.Today()
		logs, err := st.LiftLogsInRange(ctx, windowStart(today, opts.TrendDays), today, nil)
		if err != nil {
			return nil, err
		}
		return metrics.TrendSeries(logs), nil
	}))

	reg.Register(New(ViewDelays, st, []store.Collection{store.DelayRecords}, func(ctx context.Context) (any, error) {
		today := opts.Today()
		delays, err := st.DelaysInRange(ctx, windowStart(today, opts.TrendDays), today, nil)
		if err != nil {
			return nil, err
		}
		return DelaySnapshot{
			Breakdown: metrics.BreakdownDelays(delays),
			Trend:     metrics.DelayTrendSeries(delays),
		}, nil
	}))

	rankCols := []store.Collection{store.LiftLogs, store.PerformanceRatings, store.Profiles}
	reg.Register(New(ViewRankings, st, rankCols, func(ctx context.Context) (any, error) {
		today := opts.Today()
		start := windowStart(today, opts.RatingDays)
		operators, err := st.OperatorProfiles(ctx)
		if err != nil {
			return nil, err
		}
		logs, err := st.LiftLogsInRange(ctx, start, today, nil)
		if err != nil {
			return nil, err
		}
		ratings, err := st.RatingsInRange(ctx, start, today, nil)
		if err != nil {
			return nil, err
		}
		return metrics.RankOperators(operators, logs, ratings), nil
	}))

	overviewCols := []store.Collection{store.LiftLogs, store.DelayRecords, store.WorkShifts, store.Profiles}
	reg.Register(New(ViewOperators, st, overviewCols, func(ctx context.Context) (any, error) {
		today := opts.Today()
		start := windowStart(today, opts.TrendDays)
		operators, err := st.OperatorProfiles(ctx)
		if err != nil {
			return nil, err
		}
		shifts, err := st.ShiftsInRange(ctx, start, today, nil)
		if err != nil {
			return nil, err
		}
		logs, err := st.LiftLogsInRange(ctx, start, today, nil)
		if err != nil {
			return nil, err
		}
		delays, err := st.DelaysInRange(ctx, start, today, nil)
		if err != nil {
			return nil, err
		}
		return metrics.OverviewOperators(operators, shifts, logs, delays, today), nil
	}))

	reg.Register(New(ViewVehicles, st, []store.Collection{store.Vehicles}, func(ctx context.Context) (any, error) {
		return st.VehicleList(ctx)
	}))

	return reg
}
