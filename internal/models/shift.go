package models

import "time"

// WorkShift records an operator's scheduled working hours for one day.
// StartTime and EndTime are same-day HH:MM values; overnight shifts that wrap
// past midnight are rejected at submission.
type WorkShift struct {
	ID         string `gorm:"primaryKey;size:36"`
	OperatorID string `gorm:"size:36;index;not null"`
	ShiftDate  string `gorm:"size:10;index;not null"` // YYYY-MM-DD
	StartTime  string `gorm:"size:5;not null"`        // HH:MM
	EndTime    string `gorm:"size:5;not null"`        // HH:MM
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
