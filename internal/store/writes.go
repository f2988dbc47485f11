package store

import (
	"context"

	"github.com/portworks/craneview/internal/models"
)

// InsertLiftLog stores a lift log and publishes a lift_logs change event.
func (s *Store) InsertLiftLog(ctx context.Context, log *models.LiftLog) error {
	if log.ID == "" {
		id, err := NewID("ll")
		if err != nil {
			return err
		}
		log.ID = id
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return insertErr(LiftLogs, err)
	}
	s.notifier.Publish(LiftLogs)
	return nil
}

// InsertDelay stores a delay record and publishes a delay_records change event.
func (s *Store) InsertDelay(ctx context.Context, d *models.DelayRecord) error {
	if d.ID == "" {
		id, err := NewID("dl")
		if err != nil {
			return err
		}
		d.ID = id
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return insertErr(DelayRecords, err)
	}
	s.notifier.Publish(DelayRecords)
	return nil
}

// InsertShift stores a work shift and publishes a work_shifts change event.
func (s *Store) InsertShift(ctx context.Context, w *models.WorkShift) error {
	if w.ID == "" {
		id, err := NewID("ws")
		if err != nil {
			return err
		}
		w.ID = id
	}
	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return insertErr(WorkShifts, err)
	}
	s.notifier.Publish(WorkShifts)
	return nil
}

// InsertRating stores a performance rating and publishes a change event.
func (s *Store) InsertRating(ctx context.Context, r *models.PerformanceRating) error {
	if r.ID == "" {
		id, err := NewID("pr")
		if err != nil {
			return err
		}
		r.ID = id
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return insertErr(PerformanceRatings, err)
	}
	s.notifier.Publish(PerformanceRatings)
	return nil
}

// InsertVehicle stores a vehicle and publishes a vehicles change event.
func (s *Store) InsertVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.ID == "" {
		id, err := NewID("vh")
		if err != nil {
			return err
		}
		v.ID = id
	}
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return insertErr(Vehicles, err)
	}
	s.notifier.Publish(Vehicles)
	return nil
}

// UpdateVehicleStatus changes a vehicle's status and optional assignee, then
// publishes a vehicles change event.
func (s *Store) UpdateVehicleStatus(ctx context.Context, id string, status models.VehicleStatus, assignedTo *string) error {
	patch := map[string]interface{}{
		"status":      status,
		"assigned_to": assignedTo,
	}
	res := s.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return updateErr(Vehicles, res.Error)
	}
	s.notifier.Publish(Vehicles)
	return nil
}

// InsertProfile stores a profile with its role rows. Used by seeding and
// tests; account creation itself is external.
func (s *Store) InsertProfile(ctx context.Context, p *models.Profile, role string) error {
	if p.ID == "" {
		id, err := NewID("op")
		if err != nil {
			return err
		}
		p.ID = id
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return insertErr(Profiles, err)
	}
	if role != "" {
		ur := models.UserRole{UserID: p.ID, Role: role}
		if err := s.db.WithContext(ctx).Create(&ur).Error; err != nil {
			return insertErr(UserRoles, err)
		}
	}
	s.notifier.Publish(Profiles)
	return nil
}
