// Package submit validates incoming records and derives their computed
// fields before they reach the store. Nothing that fails validation is
// written, so a rejected submission never triggers a recompute.
package submit

import (
	"context"
	"fmt"

	"github.com/portworks/craneview/internal/metrics"
	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/store"
)

// ValidationError reports a rejected submission. It carries the offending
// field so callers can surface it without parsing the message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submit: %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Gate accepts submissions, validates them, and writes them to the store.
type Gate struct {
	st *store.Store
}

// NewGate creates a Gate over st.
func NewGate(st *store.Store) *Gate {
	return &Gate{st: st}
}

// LiftInput is an hourly lift count submission.
type LiftInput struct {
	OperatorID string
	ShiftID    *string
	LogDate    string
	HourSlot   string
	LiftsCount int
}

// Lift validates and stores an hourly lift log. TargetMet is derived here,
// never taken from the caller.
func (g *Gate) Lift(ctx context.Context, in LiftInput) (*models.LiftLog, error) {
	if in.OperatorID == "" {
		return nil, invalid("operatorId", "required")
	}
	if err := validDate(in.LogDate); err != nil {
		return nil, invalid("logDate", "%v", err)
	}
	if _, err := metrics.ParseClock(in.HourSlot); err != nil {
		return nil, invalid("hourSlot", "want HH:MM, got %q", in.HourSlot)
	}
	if in.LiftsCount < 0 || in.LiftsCount > models.MaxLiftsPerHour {
		return nil, invalid("liftsCount", "must be between 0 and %d", models.MaxLiftsPerHour)
	}

	log := &models.LiftLog{
		OperatorID: in.OperatorID,
		ShiftID:    in.ShiftID,
		LogDate:    in.LogDate,
		HourSlot:   in.HourSlot,
		LiftsCount: in.LiftsCount,
		TargetMet:  metrics.TargetMet(in.LiftsCount),
	}
	if err := g.st.InsertLiftLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// DelayInput is a delay report submission.
type DelayInput struct {
	OperatorID string
	ShiftID    *string
	LiftLogID  *string
	DelayDate  string
	DelayStart string
	DelayEnd   string
	Reason     models.DelayReason
	Notes      *string
}

// Delay validates and stores a delay record. DurationMinutes is derived from
// the start and end clocks.
func (g *Gate) Delay(ctx context.Context, in DelayInput) (*models.DelayRecord, error) {
	if in.OperatorID == "" {
		return nil, invalid("operatorId", "required")
	}
	if err := validDate(in.DelayDate); err != nil {
		return nil, invalid("delayDate", "%v", err)
	}
	if !in.Reason.Valid() {
		return nil, invalid("reason", "unknown delay reason %q", in.Reason)
	}
	minutes, err := metrics.DurationMinutes(in.DelayStart, in.DelayEnd)
	if err != nil {
		return nil, invalid("delayEnd", "%v", err)
	}

	rec := &models.DelayRecord{
		OperatorID:      in.OperatorID,
		ShiftID:         in.ShiftID,
		LiftLogID:       in.LiftLogID,
		DelayDate:       in.DelayDate,
		DelayStart:      in.DelayStart,
		DelayEnd:        in.DelayEnd,
		Reason:          in.Reason,
		Notes:           in.Notes,
		DurationMinutes: minutes,
	}
	if err := g.st.InsertDelay(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ShiftInput is a work shift submission.
type ShiftInput struct {
	OperatorID string
	ShiftDate  string
	StartTime  string
	EndTime    string
}

// Shift validates and stores a work shift. Shifts are same-day: the end
// clock must be after the start clock.
func (g *Gate) Shift(ctx context.Context, in ShiftInput) (*models.WorkShift, error) {
	if in.OperatorID == "" {
		return nil, invalid("operatorId", "required")
	}
	if err := validDate(in.ShiftDate); err != nil {
		return nil, invalid("shiftDate", "%v", err)
	}
	if _, err := metrics.DurationMinutes(in.StartTime, in.EndTime); err != nil {
		return nil, invalid("endTime", "%v", err)
	}

	shift := &models.WorkShift{
		OperatorID: in.OperatorID,
		ShiftDate:  in.ShiftDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
	}
	if err := g.st.InsertShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// RatingInput is a supervisor performance rating submission.
type RatingInput struct {
	OperatorID string
	RatedBy    *string
	Rating     int
	RatingDate string
	Comments   *string
}

// Rating validates and stores a performance rating.
func (g *Gate) Rating(ctx context.Context, in RatingInput) (*models.PerformanceRating, error) {
	if in.OperatorID == "" {
		return nil, invalid("operatorId", "required")
	}
	if err := validDate(in.RatingDate); err != nil {
		return nil, invalid("ratingDate", "%v", err)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating", "must be between 1 and 5")
	}

	r := &models.PerformanceRating{
		OperatorID: in.OperatorID,
		RatedBy:    in.RatedBy,
		Rating:     in.Rating,
		RatingDate: in.RatingDate,
		Comments:   in.Comments,
	}
	if err := g.st.InsertRating(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// VehicleInput is a fleet vehicle registration.
type VehicleInput struct {
	VehicleNumber string
	VehicleType   string
}

// Vehicle validates and stores a vehicle. New vehicles start available.
func (g *Gate) Vehicle(ctx context.Context, in VehicleInput) (*models.Vehicle, error) {
	if in.VehicleNumber == "" {
		return nil, invalid("vehicleNumber", "required")
	}
	if in.VehicleType == "" {
		return nil, invalid("vehicleType", "required")
	}

	v := &models.Vehicle{
		VehicleNumber: in.VehicleNumber,
		VehicleType:   in.VehicleType,
		Status:        models.VehicleAvailable,
	}
	if err := g.st.InsertVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// VehicleStatus validates and applies a vehicle status change. assignedTo is
// cleared unless the new status is in_use.
func (g *Gate) VehicleStatus(ctx context.Context, id string, status models.VehicleStatus, assignedTo *string) error {
	if id == "" {
		return invalid("vehicleId", "required")
	}
	if !status.Valid() {
		return invalid("status", "unknown vehicle status %q", status)
	}
	if status != models.VehicleInUse {
		assignedTo = nil
	}
	return g.st.UpdateVehicleStatus(ctx, id, status, assignedTo)
}

// validDate checks the YYYY-MM-DD shape without interpreting the calendar.
func validDate(date string) error {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return fmt.Errorf("want YYYY-MM-DD, got %q", date)
	}
	for i, r := range date {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return fmt.Errorf("want YYYY-MM-DD, got %q", date)
		}
	}
	return nil
}
