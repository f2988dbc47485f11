// Package digest builds the daily fleet summary posted to chat channels.
package digest

import (
	"context"
	"fmt"
	"strings"

	"github.com/portworks/craneview/internal/metrics"
	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/notify"
	"github.com/portworks/craneview/internal/store"
)

// Report holds the computed metrics for one day of fleet activity.
type Report struct {
	Date              string
	TotalLifts        int
	TargetMetPercent  int
	TotalDelayMinutes int
	ActiveOperators   int
	TotalOperators    int
	TopOperator       string
	TopOperatorAvg    int
	DelaysByReason    map[models.DelayReason]int
}

// Build computes the digest report for date. Returns nil when the fleet had
// no activity that day, so quiet days produce no post.
func Build(ctx context.Context, st *store.Store, date string) (*Report, error) {
	operators, err := st.OperatorProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	logs, err := st.LiftLogsInRange(ctx, date, date, nil)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	delays, err := st.DelaysInRange(ctx, date, date, nil)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	if len(logs) == 0 && len(delays) == 0 {
		return nil, nil
	}

	fleet := metrics.SummarizeFleet(date, operators, logs, delays)
	report := &Report{
		Date:              date,
		TotalLifts:        fleet.TotalLifts,
		TargetMetPercent:  fleet.TargetMetPercent,
		TotalDelayMinutes: fleet.TotalDelayMinutes,
		ActiveOperators:   fleet.ActiveOperators,
		TotalOperators:    fleet.TotalOperators,
		DelaysByReason:    metrics.BreakdownDelays(delays).ByReason,
	}

	for _, op := range fleet.Operators {
		if op.TotalLifts > 0 && (report.TopOperator == "" || op.AvgLiftsPerHour > report.TopOperatorAvg) {
			report.TopOperator = op.FullName
			report.TopOperatorAvg = op.AvgLiftsPerHour
		}
	}

	return report, nil
}

// Format renders a report as a chat message.
func Format(report *Report) notify.Message {
	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("**Date**: %s", report.Date))
	bodyLines = append(bodyLines, fmt.Sprintf("**Lifts**: %d total, target met %d%% of hours",
		report.TotalLifts, report.TargetMetPercent))
	bodyLines = append(bodyLines, fmt.Sprintf("**Operators**: %d of %d active",
		report.ActiveOperators, report.TotalOperators))
	if report.TopOperator != "" {
		bodyLines = append(bodyLines, fmt.Sprintf("**Top Operator**: %s (%d lifts/hr)",
			report.TopOperator, report.TopOperatorAvg))
	}
	if report.TotalDelayMinutes > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Delays**: %d minutes", report.TotalDelayMinutes))
		for _, reason := range models.DelayReasons {
			if minutes := report.DelaysByReason[reason]; minutes > 0 {
				bodyLines = append(bodyLines, fmt.Sprintf("  %s: %dm", reason.Label(), minutes))
			}
		}
	}

	fields := []notify.Field{
		{Name: "Lifts", Value: fmt.Sprintf("%d", report.TotalLifts), Short: true},
		{Name: "Target Met", Value: fmt.Sprintf("%d%%", report.TargetMetPercent), Short: true},
		{Name: "Active", Value: fmt.Sprintf("%d/%d", report.ActiveOperators, report.TotalOperators), Short: true},
	}
	if report.TotalDelayMinutes > 0 {
		fields = append(fields, notify.Field{
			Name: "Delays", Value: fmt.Sprintf("%dm", report.TotalDelayMinutes), Short: true,
		})
	}

	return notify.Message{
		Title:  fmt.Sprintf("Fleet Digest — %s", report.Date),
		Body:   strings.Join(bodyLines, "\n"),
		Fields: fields,
	}
}
