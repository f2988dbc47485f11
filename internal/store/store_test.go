package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/portworks/craneview/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Profile{}, &models.UserRole{}, &models.WorkShift{},
		&models.LiftLog{}, &models.DelayRecord{}, &models.Vehicle{},
		&models.PerformanceRating{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(gdb)
}

func mustInsertLift(t *testing.T, s *Store, operatorID, date, slot string, lifts int) {
	t.Helper()
	log := &models.LiftLog{
		OperatorID: operatorID,
		LogDate:    date,
		HourSlot:   slot,
		LiftsCount: lifts,
		TargetMet:  lifts >= models.TargetLiftsPerHour,
	}
	if err := s.InsertLiftLog(context.Background(), log); err != nil {
		t.Fatalf("insert lift log: %v", err)
	}
}

func TestNewID(t *testing.T) {
	id, err := NewID("ll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(id, "ll-") {
		t.Errorf("id = %q, want ll- prefix", id)
	}
	if len(id) != len("ll-")+8 {
		t.Errorf("len(id) = %d, want %d", len(id), len("ll-")+8)
	}

	other, _ := NewID("ll")
	if id == other {
		t.Error("two generated IDs are equal")
	}
}

func TestLiftLogsInRange_InclusiveBounds(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mustInsertLift(t, s, "op-1", "2025-05-31", "08:00", 20)
	mustInsertLift(t, s, "op-1", "2025-06-01", "08:00", 25)
	mustInsertLift(t, s, "op-1", "2025-06-03", "09:00", 30)
	mustInsertLift(t, s, "op-1", "2025-06-04", "08:00", 10)

	logs, err := s.LiftLogsInRange(ctx, "2025-06-01", "2025-06-03", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("len(logs) = %d, want 2", len(logs))
	}
	if logs[0].LogDate != "2025-06-01" || logs[1].LogDate != "2025-06-03" {
		t.Errorf("dates = %q, %q, want window bounds included and sorted", logs[0].LogDate, logs[1].LogDate)
	}
}

func TestLiftLogsInRange_OperatorFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mustInsertLift(t, s, "op-1", "2025-06-01", "08:00", 25)
	mustInsertLift(t, s, "op-2", "2025-06-01", "08:00", 30)
	mustInsertLift(t, s, "op-3", "2025-06-01", "08:00", 12)

	logs, err := s.LiftLogsInRange(ctx, "2025-06-01", "2025-06-01", []string{"op-1", "op-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("len(logs) = %d, want 2", len(logs))
	}
	for _, l := range logs {
		if l.OperatorID == "op-2" {
			t.Error("op-2 should be filtered out")
		}
	}
}

func TestLiftLogsInRange_HourSlotOrdering(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mustInsertLift(t, s, "op-1", "2025-06-01", "14:00", 20)
	mustInsertLift(t, s, "op-1", "2025-06-01", "08:00", 25)
	mustInsertLift(t, s, "op-1", "2025-06-01", "09:00", 30)

	logs, err := s.LiftLogsInRange(ctx, "2025-06-01", "2025-06-01", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slots := []string{logs[0].HourSlot, logs[1].HourSlot, logs[2].HourSlot}
	want := []string{"08:00", "09:00", "14:00"}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slots[%d] = %q, want %q", i, slots[i], want[i])
		}
	}
}

func TestOperatorProfiles_FiltersByRole(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertProfile(ctx, &models.Profile{FullName: "Amira Hassan", EmployeeID: "EMP-001"}, models.RoleCraneOperator); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertProfile(ctx, &models.Profile{FullName: "Bassem Nour", EmployeeID: "EMP-002"}, models.RoleSupervisor); err != nil {
		t.Fatal(err)
	}

	profiles, err := s.OperatorProfiles(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("len(profiles) = %d, want 1", len(profiles))
	}
	if profiles[0].FullName != "Amira Hassan" {
		t.Errorf("FullName = %q, want Amira Hassan", profiles[0].FullName)
	}
}

func TestOperatorProfiles_EmptyWithoutRoles(t *testing.T) {
	s := testStore(t)
	profiles, err := s.OperatorProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("len(profiles) = %d, want 0", len(profiles))
	}
}

func TestInsertVehicle_DefaultsToAvailable(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	v := &models.Vehicle{VehicleNumber: "TRK-001", VehicleType: "Truck"}
	if err := s.InsertVehicle(ctx, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vehicles, err := s.VehicleList(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("len(vehicles) = %d, want 1", len(vehicles))
	}
	if vehicles[0].Status != models.VehicleAvailable {
		t.Errorf("Status = %q, want available", vehicles[0].Status)
	}
}

func TestUpdateVehicleStatus(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	v := &models.Vehicle{VehicleNumber: "TRK-002", VehicleType: "Forklift"}
	if err := s.InsertVehicle(ctx, v); err != nil {
		t.Fatal(err)
	}

	op := "op-9"
	if err := s.UpdateVehicleStatus(ctx, v.ID, models.VehicleInUse, &op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vehicles, _ := s.VehicleList(ctx)
	if vehicles[0].Status != models.VehicleInUse {
		t.Errorf("Status = %q, want in_use", vehicles[0].Status)
	}
	if vehicles[0].AssignedTo == nil || *vehicles[0].AssignedTo != "op-9" {
		t.Errorf("AssignedTo = %v, want op-9", vehicles[0].AssignedTo)
	}
}

func TestInsertLiftLog_DuplicateSlotAllowed(t *testing.T) {
	// Duplicate (operator, date, slot) rows are a data-quality concern the
	// engine sums rather than dedupes; the store must accept them.
	s := testStore(t)
	mustInsertLift(t, s, "op-1", "2025-06-01", "08:00", 10)
	mustInsertLift(t, s, "op-1", "2025-06-01", "08:00", 12)

	logs, err := s.LiftLogsInRange(context.Background(), "2025-06-01", "2025-06-01", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("len(logs) = %d, want 2", len(logs))
	}
}

func mustInsertRating(t *testing.T, s *Store, operatorID, date string, rating int) {
	t.Helper()
	r := &models.PerformanceRating{OperatorID: operatorID, RatingDate: date, Rating: rating}
	if err := s.InsertRating(context.Background(), r); err != nil {
		t.Fatalf("insert rating: %v", err)
	}
}

func TestRatingsInRange_InclusiveBounds(t *testing.T) {
	s := testStore(t)
	mustInsertRating(t, s, "op-1", "2025-05-31", 2)
	mustInsertRating(t, s, "op-1", "2025-06-01", 3)
	mustInsertRating(t, s, "op-1", "2025-06-07", 5)
	mustInsertRating(t, s, "op-1", "2025-06-08", 4)

	ratings, err := s.RatingsInRange(context.Background(), "2025-06-01", "2025-06-07", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("len(ratings) = %d, want 2", len(ratings))
	}
	// Newest first.
	if ratings[0].RatingDate != "2025-06-07" || ratings[1].RatingDate != "2025-06-01" {
		t.Errorf("dates = %s, %s, want 2025-06-07, 2025-06-01",
			ratings[0].RatingDate, ratings[1].RatingDate)
	}
}

func TestRatingsForOperators_Filter(t *testing.T) {
	s := testStore(t)
	mustInsertRating(t, s, "op-1", "2025-06-01", 3)
	mustInsertRating(t, s, "op-2", "2025-06-02", 5)
	mustInsertRating(t, s, "op-1", "2025-06-03", 4)

	ratings, err := s.RatingsForOperators(context.Background(), []string{"op-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("len(ratings) = %d, want 2", len(ratings))
	}
	for _, r := range ratings {
		if r.OperatorID != "op-1" {
			t.Errorf("OperatorID = %q, want op-1", r.OperatorID)
		}
	}

	all, err := s.RatingsForOperators(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestInsertLiftLog_StoreErrorWrapped(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	log := &models.LiftLog{ID: "ll-dup", OperatorID: "op-1", LogDate: "2025-06-01", HourSlot: "08:00", LiftsCount: 5}
	if err := s.InsertLiftLog(ctx, log); err != nil {
		t.Fatal(err)
	}

	dup := &models.LiftLog{ID: "ll-dup", OperatorID: "op-1", LogDate: "2025-06-01", HourSlot: "09:00", LiftsCount: 5}
	err := s.InsertLiftLog(ctx, dup)
	if err == nil {
		t.Fatal("expected error for duplicate primary key, got nil")
	}
	var serr *StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StoreError", err)
	}
	if serr.Op != "insert" || serr.Collection != LiftLogs {
		t.Errorf("StoreError = %s %s, want insert lift_logs", serr.Op, serr.Collection)
	}
}
