package metrics

import (
	"sort"

	"github.com/portworks/craneview/internal/models"
)

// SummarizeOperatorDay reduces one operator's records for one day. Records
// for other operators or dates are ignored, so callers may pass unfiltered
// window slices.
func SummarizeOperatorDay(operatorID, date string, logs []models.LiftLog, delays []models.DelayRecord) OperatorDaySummary {
	sum := OperatorDaySummary{OperatorID: operatorID, Date: date}
	for _, l := range logs {
		if l.OperatorID != operatorID || l.LogDate != date {
			continue
		}
		sum.TotalLifts += l.LiftsCount
		sum.HoursLogged++
		if l.TargetMet {
			sum.TargetsMetCount++
		}
	}
	for _, d := range delays {
		if d.OperatorID != operatorID || d.DelayDate != date {
			continue
		}
		sum.TotalDelayMinutes += d.DurationMinutes
	}
	sum.AvgLiftsPerHour = roundAvg(sum.TotalLifts, sum.HoursLogged)
	return sum
}

// DaySummaries reduces a window of records to one summary per
// (operator, date) pair, sorted by date then operator.
func DaySummaries(logs []models.LiftLog, delays []models.DelayRecord) []OperatorDaySummary {
	type key struct{ op, date string }
	seen := make(map[key]bool)
	var keys []key
	for _, l := range logs {
		k := key{l.OperatorID, l.LogDate}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, d := range delays {
		k := key{d.OperatorID, d.DelayDate}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].op < keys[j].op
	})

	out := make([]OperatorDaySummary, len(keys))
	for i, k := range keys {
		out[i] = SummarizeOperatorDay(k.op, k.date, logs, delays)
	}
	return out
}

// SummarizeFleet reduces one day's records across all operators. An operator
// is active when it has at least one lift log that day; that is a logging
// proxy, not a session signal.
func SummarizeFleet(date string, operators []models.Profile, logs []models.LiftLog, delays []models.DelayRecord) FleetSummary {
	fleet := FleetSummary{
		Date:           date,
		TotalOperators: len(operators),
		LiftsByHour:    []HourBucket{},
		Operators:      []OperatorStatus{},
	}

	targetMet := 0
	slotCount := 0
	byHour := make(map[string]int)
	for _, l := range logs {
		if l.LogDate != date {
			continue
		}
		fleet.TotalLifts += l.LiftsCount
		slotCount++
		if l.TargetMet {
			targetMet++
		}
		byHour[l.HourSlot] += l.LiftsCount
	}
	for _, d := range delays {
		if d.DelayDate != date {
			continue
		}
		fleet.TotalDelayMinutes += d.DurationMinutes
	}
	if slotCount > 0 {
		fleet.TargetMetPercent = (200*targetMet + slotCount) / (2 * slotCount)
	}

	hours := make([]string, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Strings(hours)
	for _, h := range hours {
		fleet.LiftsByHour = append(fleet.LiftsByHour, HourBucket{
			Hour:   h,
			Lifts:  byHour[h],
			Target: models.TargetLiftsPerHour,
		})
	}

	for _, op := range operators {
		day := SummarizeOperatorDay(op.ID, date, logs, delays)
		status := OperatorStatus{
			OperatorID:        op.ID,
			FullName:          op.FullName,
			EmployeeID:        op.EmployeeID,
			TotalLifts:        day.TotalLifts,
			TotalDelayMinutes: day.TotalDelayMinutes,
			AvgLiftsPerHour:   day.AvgLiftsPerHour,
			EfficiencyPercent: EfficiencyPercent(day.AvgLiftsPerHour, models.TargetLiftsPerHour),
			Active:            day.HoursLogged > 0,
		}
		if status.Active {
			fleet.ActiveOperators++
		}
		fleet.Operators = append(fleet.Operators, status)
	}

	return fleet
}

// BreakdownDelays sums delay minutes per reason over the given records.
func BreakdownDelays(delays []models.DelayRecord) DelayBreakdown {
	b := DelayBreakdown{ByReason: make(map[models.DelayReason]int)}
	for _, d := range delays {
		b.ByReason[d.Reason] += d.DurationMinutes
	}
	return b
}

// TrendSeries buckets lift logs by date into a date-ascending productivity
// series. Only dates with at least one log appear.
func TrendSeries(logs []models.LiftLog) ProductivityTrend {
	type bucket struct{ lifts, slots int }
	byDate := make(map[string]*bucket)
	for _, l := range logs {
		b := byDate[l.LogDate]
		if b == nil {
			b = &bucket{}
			byDate[l.LogDate] = b
		}
		b.lifts += l.LiftsCount
		b.slots++
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	trend := ProductivityTrend{Points: make([]TrendPoint, 0, len(dates))}
	for _, d := range dates {
		b := byDate[d]
		avg := roundAvg(b.lifts, b.slots)
		trend.Points = append(trend.Points, TrendPoint{
			Date:              d,
			TotalLifts:        b.lifts,
			EfficiencyPercent: EfficiencyPercent(avg, models.TargetLiftsPerHour),
		})
	}
	return trend
}

// DelayTrendSeries buckets delay minutes by date, date-ascending.
func DelayTrendSeries(delays []models.DelayRecord) []DelayTrendPoint {
	byDate := make(map[string]int)
	for _, d := range delays {
		byDate[d.DelayDate] += d.DurationMinutes
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DelayTrendPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, DelayTrendPoint{Date: d, Minutes: byDate[d]})
	}
	return out
}

// RankOperators orders operators by rolling average lifts/hour over the
// supplied window of logs, attaching suggested and historical ratings.
// Ties break by name then operator ID so repeated runs produce identical
// output.
func RankOperators(operators []models.Profile, logs []models.LiftLog, ratings []models.PerformanceRating) []OperatorRankingEntry {
	entries := make([]OperatorRankingEntry, 0, len(operators))
	for _, op := range operators {
		total, slots := 0, 0
		for _, l := range logs {
			if l.OperatorID != op.ID {
				continue
			}
			total += l.LiftsCount
			slots++
		}
		avg := roundAvg(total, slots)

		ratingSum, ratingCount := 0, 0
		for _, r := range ratings {
			if r.OperatorID != op.ID {
				continue
			}
			ratingSum += r.Rating
			ratingCount++
		}
		avgRating := AvgRating(ratingSum, ratingCount)

		entries = append(entries, OperatorRankingEntry{
			OperatorID:          op.ID,
			FullName:            op.FullName,
			EmployeeID:          op.EmployeeID,
			AvgLiftsPerHour:     avg,
			SuggestedRating:     SuggestRating(avg),
			PerformanceLabel:    PerformanceLabel(avg),
			AvgHistoricalRating: avgRating,
			RatingCount:         ratingCount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgLiftsPerHour != entries[j].AvgLiftsPerHour {
			return entries[i].AvgLiftsPerHour > entries[j].AvgLiftsPerHour
		}
		if entries[i].FullName != entries[j].FullName {
			return entries[i].FullName < entries[j].FullName
		}
		return entries[i].OperatorID < entries[j].OperatorID
	})
	return entries
}

// OverviewOperators builds the expanded supervisor view: window totals plus
// the raw records per operator. today marks which operators count as active.
func OverviewOperators(operators []models.Profile, shifts []models.WorkShift, logs []models.LiftLog, delays []models.DelayRecord, today string) []OperatorOverview {
	out := make([]OperatorOverview, 0, len(operators))
	for _, op := range operators {
		ov := OperatorOverview{
			OperatorID: op.ID,
			FullName:   op.FullName,
			EmployeeID: op.EmployeeID,
			Shifts:     []models.WorkShift{},
			LiftLogs:   []models.LiftLog{},
			Delays:     []models.DelayRecord{},
		}
		slots := 0
		for _, s := range shifts {
			if s.OperatorID == op.ID {
				ov.Shifts = append(ov.Shifts, s)
			}
		}
		for _, l := range logs {
			if l.OperatorID != op.ID {
				continue
			}
			ov.LiftLogs = append(ov.LiftLogs, l)
			ov.TotalLifts += l.LiftsCount
			slots++
			if l.LogDate == today {
				ov.Active = true
			}
		}
		for _, d := range delays {
			if d.OperatorID != op.ID {
				continue
			}
			ov.Delays = append(ov.Delays, d)
			ov.TotalDelayMinutes += d.DurationMinutes
		}
		ov.AvgLiftsPerHour = roundAvg(ov.TotalLifts, slots)
		ov.EfficiencyPercent = EfficiencyPercent(ov.AvgLiftsPerHour, models.TargetLiftsPerHour)
		out = append(out, ov)
	}
	return out
}
