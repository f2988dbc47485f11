package models

import "time"

// DelayReason classifies why crane operations were interrupted.
type DelayReason string

const (
	ReasonCraneMalfunction    DelayReason = "crane_malfunction"
	ReasonVehicleUnavailable  DelayReason = "vehicle_unavailability"
	ReasonWeatherConditions   DelayReason = "weather_conditions"
	ReasonOperatorBreak       DelayReason = "operator_break"
	ReasonVesselRepositioning DelayReason = "vessel_repositioning"
	ReasonSafetyIncident      DelayReason = "safety_incident"
)

// DelayReasons lists every valid reason in display order.
var DelayReasons = []DelayReason{
	ReasonCraneMalfunction,
	ReasonVehicleUnavailable,
	ReasonWeatherConditions,
	ReasonOperatorBreak,
	ReasonVesselRepositioning,
	ReasonSafetyIncident,
}

// DelayReasonLabels maps reasons to display labels.
var DelayReasonLabels = map[DelayReason]string{
	ReasonCraneMalfunction:    "Crane Malfunction",
	ReasonVehicleUnavailable:  "Vehicle Unavailability",
	ReasonWeatherConditions:   "Weather Conditions",
	ReasonOperatorBreak:       "Operator Break",
	ReasonVesselRepositioning: "Vessel Repositioning",
	ReasonSafetyIncident:      "Safety Incident",
}

// Valid reports whether r is one of the six known reasons.
func (r DelayReason) Valid() bool {
	_, ok := DelayReasonLabels[r]
	return ok
}

// Label returns the display label for r, or the raw value if unknown.
func (r DelayReason) Label() string {
	if l, ok := DelayReasonLabels[r]; ok {
		return l
	}
	return string(r)
}

// DelayRecord captures one interruption with exact times. DurationMinutes is
// derived from DelayStart/DelayEnd at submission and trusted as stored.
type DelayRecord struct {
	ID              string      `gorm:"primaryKey;size:36"`
	OperatorID      string      `gorm:"size:36;index;not null"`
	ShiftID         *string     `gorm:"size:36"`
	LiftLogID       *string     `gorm:"size:36"`
	DelayDate       string      `gorm:"size:10;index;not null"` // YYYY-MM-DD
	DelayStart      string      `gorm:"size:5;not null"`        // HH:MM
	DelayEnd        string      `gorm:"size:5;not null"`        // HH:MM
	Reason          DelayReason `gorm:"size:32;not null"`
	Notes           *string     `gorm:"type:text"`
	DurationMinutes int         `gorm:"not null"`
	CreatedAt       time.Time
}
