package store

import (
	"context"

	"github.com/portworks/craneview/internal/models"
)

// LiftLogsInRange returns lift logs with log_date in [start, end] inclusive,
// ordered by date then hour slot. An empty operatorIDs list means all
// operators.
func (s *Store) LiftLogsInRange(ctx context.Context, start, end string, operatorIDs []string) ([]models.LiftLog, error) {
	q := s.db.WithContext(ctx).
		Where("log_date >= ? AND log_date <= ?", start, end)
	if len(operatorIDs) > 0 {
		q = q.Where("operator_id IN ?", operatorIDs)
	}

	var logs []models.LiftLog
	if err := q.Order("log_date ASC, hour_slot ASC").Find(&logs).Error; err != nil {
		return nil, queryErr(LiftLogs, err)
	}
	return logs, nil
}

// DelaysInRange returns delay records with delay_date in [start, end]
// inclusive, ordered by date then start time.
func (s *Store) DelaysInRange(ctx context.Context, start, end string, operatorIDs []string) ([]models.DelayRecord, error) {
	q := s.db.WithContext(ctx).
		Where("delay_date >= ? AND delay_date <= ?", start, end)
	if len(operatorIDs) > 0 {
		q = q.Where("operator_id IN ?", operatorIDs)
	}

	var delays []models.DelayRecord
	if err := q.Order("delay_date ASC, delay_start ASC").Find(&delays).Error; err != nil {
		return nil, queryErr(DelayRecords, err)
	}
	return delays, nil
}

// ShiftsInRange returns work shifts with shift_date in [start, end] inclusive,
// newest date first.
func (s *Store) ShiftsInRange(ctx context.Context, start, end string, operatorIDs []string) ([]models.WorkShift, error) {
	q := s.db.WithContext(ctx).
		Where("shift_date >= ? AND shift_date <= ?", start, end)
	if len(operatorIDs) > 0 {
		q = q.Where("operator_id IN ?", operatorIDs)
	}

	var shifts []models.WorkShift
	if err := q.Order("shift_date DESC, start_time ASC").Find(&shifts).Error; err != nil {
		return nil, queryErr(WorkShifts, err)
	}
	return shifts, nil
}

// RatingsForOperators returns all performance ratings for the given operators,
// newest rating date first. An empty list means all operators.
func (s *Store) RatingsForOperators(ctx context.Context, operatorIDs []string) ([]models.PerformanceRating, error) {
	q := s.db.WithContext(ctx).Model(&models.PerformanceRating{})
	if len(operatorIDs) > 0 {
		q = q.Where("operator_id IN ?", operatorIDs)
	}

	var ratings []models.PerformanceRating
	if err := q.Order("rating_date DESC").Find(&ratings).Error; err != nil {
		return nil, queryErr(PerformanceRatings, err)
	}
	return ratings, nil
}

// RatingsInRange returns performance ratings with rating_date in
// [start, end] inclusive, newest rating date first.
func (s *Store) RatingsInRange(ctx context.Context, start, end string, operatorIDs []string) ([]models.PerformanceRating, error) {
	q := s.db.WithContext(ctx).
		Where("rating_date >= ? AND rating_date <= ?", start, end)
	if len(operatorIDs) > 0 {
		q = q.Where("operator_id IN ?", operatorIDs)
	}

	var ratings []models.PerformanceRating
	if err := q.Order("rating_date DESC").Find(&ratings).Error; err != nil {
		return nil, queryErr(PerformanceRatings, err)
	}
	return ratings, nil
}

// OperatorProfiles returns the profiles of every user holding the
// crane_operator role.
func (s *Store) OperatorProfiles(ctx context.Context) ([]models.Profile, error) {
	var roles []models.UserRole
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleCraneOperator).
		Find(&roles).Error; err != nil {
		return nil, queryErr(UserRoles, err)
	}
	if len(roles) == 0 {
		return []models.Profile{}, nil
	}

	ids := make([]string, len(roles))
	for i, r := range roles {
		ids[i] = r.UserID
	}

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, queryErr(Profiles, err)
	}
	return profiles, nil
}

// VehicleList returns all vehicles, newest first.
func (s *Store) VehicleList(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		return nil, queryErr(Vehicles, err)
	}
	return vehicles, nil
}
