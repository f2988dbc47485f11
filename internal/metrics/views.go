package metrics

import "github.com/portworks/craneview/internal/models"

// OperatorDaySummary aggregates one operator's lift and delay records for a
// single day.
type OperatorDaySummary struct {
	OperatorID        string `json:"operatorId"`
	Date              string `json:"date"`
	TotalLifts        int    `json:"totalLifts"`
	HoursLogged       int    `json:"hoursLogged"`
	AvgLiftsPerHour   int    `json:"avgLiftsPerHour"`
	TargetsMetCount   int    `json:"targetsMetCount"`
	TotalDelayMinutes int    `json:"totalDelayMinutes"`
}

// HourBucket is the fleet-wide lift total for one hour slot.
type HourBucket struct {
	Hour   string `json:"hour"`
	Lifts  int    `json:"lifts"`
	Target int    `json:"target"`
}

// OperatorStatus is one operator's line on the fleet board for a day.
type OperatorStatus struct {
	OperatorID        string `json:"operatorId"`
	FullName          string `json:"fullName"`
	EmployeeID        string `json:"employeeId"`
	TotalLifts        int    `json:"totalLifts"`
	TotalDelayMinutes int    `json:"totalDelayMinutes"`
	AvgLiftsPerHour   int    `json:"avgLiftsPerHour"`
	EfficiencyPercent int    `json:"efficiencyPercent"`
	Active            bool   `json:"active"`
}

// FleetSummary aggregates every operator's activity for a single day.
type FleetSummary struct {
	Date              string           `json:"date"`
	TotalLifts        int              `json:"totalLifts"`
	TargetMetPercent  int              `json:"targetMetPercent"`
	TotalDelayMinutes int              `json:"totalDelayMinutes"`
	ActiveOperators   int              `json:"activeOperators"`
	TotalOperators    int              `json:"totalOperators"`
	LiftsByHour       []HourBucket     `json:"liftsByHour"`
	Operators         []OperatorStatus `json:"operators"`
}

// DelayBreakdown maps each delay reason to its summed minutes over a range.
type DelayBreakdown struct {
	ByReason map[models.DelayReason]int `json:"byReason"`
}

// TrendPoint is one day in a productivity trend series.
type TrendPoint struct {
	Date              string `json:"date"`
	TotalLifts        int    `json:"totalLifts"`
	EfficiencyPercent int    `json:"efficiencyPercent"`
}

// ProductivityTrend is a date-ascending fleet productivity series.
type ProductivityTrend struct {
	Points []TrendPoint `json:"points"`
}

// DelayTrendPoint is one day's total delay minutes.
type DelayTrendPoint struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// OperatorRankingEntry ranks one operator by rolling average lifts/hour.
type OperatorRankingEntry struct {
	OperatorID          string  `json:"operatorId"`
	FullName            string  `json:"fullName"`
	EmployeeID          string  `json:"employeeId"`
	AvgLiftsPerHour     int     `json:"avgLiftsPerHour"`
	SuggestedRating     int     `json:"suggestedRating"`
	PerformanceLabel    string  `json:"performanceLabel"`
	AvgHistoricalRating float64 `json:"avgHistoricalRating"`
	RatingCount         int     `json:"ratingCount"`
}

// OperatorOverview is the expanded per-operator view for supervisors:
// recent raw records plus window totals.
type OperatorOverview struct {
	OperatorID        string               `json:"operatorId"`
	FullName          string               `json:"fullName"`
	EmployeeID        string               `json:"employeeId"`
	TotalLifts        int                  `json:"totalLifts"`
	TotalDelayMinutes int                  `json:"totalDelayMinutes"`
	AvgLiftsPerHour   int                  `json:"avgLiftsPerHour"`
	EfficiencyPercent int                  `json:"efficiencyPercent"`
	Active            bool                 `json:"active"`
	Shifts            []models.WorkShift   `json:"shifts"`
	LiftLogs          []models.LiftLog     `json:"liftLogs"`
	Delays            []models.DelayRecord `json:"delays"`
}
