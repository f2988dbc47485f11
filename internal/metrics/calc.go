// Package metrics derives operator and fleet KPIs from raw records. All
// functions are pure and deterministic: the same input set always produces
// the same output, and empty input produces identity values, never an error.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/portworks/craneview/internal/models"
)

// ErrInvalidRange reports a time range whose end is not after its start.
var ErrInvalidRange = errors.New("end time must be after start time")

// TargetMet reports whether an hourly lift count meets the fleet target.
func TargetMet(liftsCount int) bool {
	return liftsCount >= models.TargetLiftsPerHour
}

// ParseClock converts an HH:MM value to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("metrics: parse clock %q: want HH:MM", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("metrics: parse clock %q: bad hour", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("metrics: parse clock %q: bad minute", value)
	}
	return h*60 + m, nil
}

// DurationMinutes computes the minutes between two same-day HH:MM values.
// Returns ErrInvalidRange when end <= start; overnight ranges that wrap past
// midnight are not supported.
func DurationMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, fmt.Errorf("metrics: range %s-%s: %w", start, end, ErrInvalidRange)
	}
	return e - s, nil
}

// EfficiencyPercent is the ratio of average lifts/hour to the target, as a
// rounded percentage. Zero or negative input yields 0; values above 100 are
// not clamped here.
func EfficiencyPercent(avgLifts, target int) int {
	if avgLifts <= 0 || target <= 0 {
		return 0
	}
	return (200*avgLifts + target) / (2 * target)
}

// SuggestRating maps a 30-day average lifts/hour to a suggested 1-5 rating.
// A heuristic starting point; supervisors may override it.
func SuggestRating(avgLiftsPerHour int) int {
	switch {
	case avgLiftsPerHour >= 28:
		return 5
	case avgLiftsPerHour >= 26:
		return 4
	case avgLiftsPerHour >= 24:
		return 3
	case avgLiftsPerHour >= 20:
		return 2
	default:
		return 1
	}
}

// PerformanceLabel names the performance band for an average lifts/hour,
// using the same thresholds as SuggestRating.
func PerformanceLabel(avgLiftsPerHour int) string {
	switch {
	case avgLiftsPerHour >= 28:
		return "Exceptional"
	case avgLiftsPerHour >= 26:
		return "Excellent"
	case avgLiftsPerHour >= 24:
		return "On Target"
	case avgLiftsPerHour >= 20:
		return "Below Target"
	default:
		return "Needs Improvement"
	}
}

// AvgRating averages rating points to one decimal place, the precision
// supervisors see. Returns 0 when count is 0.
func AvgRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64((sum*10+count/2)/count) / 10
}

// roundAvg returns round(total/count), 0 when count is 0.
func roundAvg(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}
