package models

import "time"

// VehicleStatus tracks a transport vehicle's availability.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleInUse       VehicleStatus = "in_use"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleUnavailable VehicleStatus = "unavailable"
)

// VehicleStatusLabels maps statuses to display labels.
var VehicleStatusLabels = map[VehicleStatus]string{
	VehicleAvailable:   "Available",
	VehicleInUse:       "In Use",
	VehicleMaintenance: "Under Maintenance",
	VehicleUnavailable: "Unavailable",
}

// VehicleTypes is the preset list offered when registering a vehicle. The
// column itself is free text.
var VehicleTypes = []string{"Truck", "Trailer", "Stacker", "Forklift", "Container Carrier"}

// Valid reports whether s is a known status.
func (s VehicleStatus) Valid() bool {
	_, ok := VehicleStatusLabels[s]
	return ok
}

// Label returns the display label for s, or the raw value if unknown.
func (s VehicleStatus) Label() string {
	if l, ok := VehicleStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Vehicle is a yard transport vehicle.
type Vehicle struct {
	ID            string        `gorm:"primaryKey;size:36"`
	VehicleNumber string        `gorm:"size:32;uniqueIndex;not null"`
	VehicleType   string        `gorm:"size:64;not null"`
	Status        VehicleStatus `gorm:"size:16;default:available;index"`
	AssignedTo    *string       `gorm:"size:36"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
