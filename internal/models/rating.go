package models

import "time"

// PerformanceRating is a supervisor's 1-5 assessment of an operator.
type PerformanceRating struct {
	ID         string  `gorm:"primaryKey;size:36"`
	OperatorID string  `gorm:"size:36;index;not null"`
	RatedBy    *string `gorm:"size:36"`
	Rating     int     `gorm:"not null"`
	RatingDate string  `gorm:"size:10;index;not null"` // YYYY-MM-DD
	Comments   *string `gorm:"type:text"`
	CreatedAt  time.Time
}
