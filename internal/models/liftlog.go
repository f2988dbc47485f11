package models

import "time"

// TargetLiftsPerHour is the fleet-wide hourly lift target.
const TargetLiftsPerHour = 24

// MaxLiftsPerHour bounds a single hourly entry.
const MaxLiftsPerHour = 100

// LiftLog records the container lifts an operator completed in one hour slot.
// One logical record per (operator, date, slot); duplicates are a data-quality
// concern, and aggregation sums them rather than deduping.
type LiftLog struct {
	ID         string  `gorm:"primaryKey;size:36"`
	OperatorID string  `gorm:"size:36;index;not null"`
	ShiftID    *string `gorm:"size:36"`
	LogDate    string  `gorm:"size:10;index;not null"` // YYYY-MM-DD
	HourSlot   string  `gorm:"size:5;not null"`        // HH:MM, start of hour
	LiftsCount int     `gorm:"not null"`
	TargetMet  bool    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
