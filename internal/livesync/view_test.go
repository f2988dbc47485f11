package livesync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/portworks/craneview/internal/db"
	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(gdb)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func insertLift(t *testing.T, st *store.Store, op, date, slot string, lifts int) {
	t.Helper()
	err := st.InsertLiftLog(context.Background(), &models.LiftLog{
		OperatorID: op,
		LogDate:    date,
		HourSlot:   slot,
		LiftsCount: lifts,
		TargetMet:  lifts >= models.TargetLiftsPerHour,
	})
	if err != nil {
		t.Fatalf("insert lift log: %v", err)
	}
}

// countFetch builds a fetch that returns the number of stored lift logs.
func countFetch(st *store.Store) FetchFunc {
	return func(ctx context.Context) (any, error) {
		var n int64
		if err := st.DB().WithContext(ctx).Model(&models.LiftLog{}).Count(&n).Error; err != nil {
			return nil, err
		}
		return n, nil
	}
}

func TestView_InitialSnapshot(t *testing.T) {
	st := testStore(t)
	insertLift(t, st, "op-1", "2025-06-01", "08:00", 20)

	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	defer v.Close()
	v.Start(context.Background())

	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })
	if got := v.Snapshot().(int64); got != 1 {
		t.Errorf("Snapshot() = %d, want 1", got)
	}
}

func TestView_RecomputesOnWrite(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	defer v.Close()
	v.Start(context.Background())
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	insertLift(t, st, "op-1", "2025-06-01", "08:00", 20)

	waitFor(t, "snapshot to reflect write", func() bool {
		snap := v.Snapshot()
		return snap != nil && snap.(int64) == 1
	})
}

func TestView_IgnoresOtherCollections(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	defer v.Close()
	v.Start(context.Background())
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	if err := st.InsertVehicle(context.Background(), &models.Vehicle{
		VehicleNumber: "TRK-100",
		VehicleType:   "Truck",
	}); err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if got := v.Version(); got != 1 {
		t.Errorf("Version() = %d after unrelated write, want 1", got)
	}
}

func TestView_CoalescesBursts(t *testing.T) {
	st := testStore(t)

	var fetches atomic.Int64
	gate := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		n := fetches.Add(1)
		if n == 2 {
			// Hold the first change-driven recompute open while the
			// burst lands.
			<-gate
		}
		var count int64
		if err := st.DB().WithContext(ctx).Model(&models.LiftLog{}).Count(&count).Error; err != nil {
			return nil, err
		}
		return count, nil
	}

	v := New("lifts", st, []store.Collection{store.LiftLogs}, fetch)
	defer v.Close()
	v.Start(context.Background())
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	for i := 0; i < 10; i++ {
		insertLift(t, st, "op-1", "2025-06-01", "08:00", 20+i)
	}
	waitFor(t, "second fetch to start", func() bool { return fetches.Load() >= 2 })
	close(gate)

	waitFor(t, "final snapshot", func() bool {
		snap := v.Snapshot()
		return snap != nil && snap.(int64) == 10
	})

	// The burst collapses: one recompute was in flight, at most one more
	// was queued behind it, plus the initial one.
	if got := fetches.Load(); got > 3 {
		t.Errorf("fetch count = %d after 10-write burst, want <= 3", got)
	}
}

func TestView_CancelDiscardsLateResult(t *testing.T) {
	st := testStore(t)

	var fetches atomic.Int64
	gate := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if fetches.Add(1) == 2 {
			// Hold the change-driven recompute open until after cancel.
			<-gate
		}
		var count int64
		if err := st.DB().Model(&models.LiftLog{}).Count(&count).Error; err != nil {
			return nil, err
		}
		return count, nil
	}

	v := New("lifts", st, []store.Collection{store.LiftLogs}, fetch)
	defer v.Close()
	ctx, cancel := context.WithCancel(context.Background())
	v.Start(ctx)
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	insertLift(t, st, "op-1", "2025-06-01", "08:00", 20)
	waitFor(t, "in-flight recompute", func() bool { return fetches.Load() >= 2 })

	// Cancel with the recompute still blocked, then let its result arrive
	// late. The fetch itself succeeds; the view must still drop it.
	cancel()
	close(gate)

	time.Sleep(50 * time.Millisecond)
	if got := v.Snapshot().(int64); got != 0 {
		t.Errorf("Snapshot() = %d after cancelled recompute, want previous value 0", got)
	}
	if got := v.Version(); got != 1 {
		t.Errorf("Version() = %d after cancelled recompute, want 1", got)
	}
}

func TestView_CloseDuringStart(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))

	started := make(chan struct{})
	go func() {
		v.Start(context.Background())
		close(started)
	}()
	v.Close()
	<-started

	if got := st.Notifier().SubscriberCount(store.LiftLogs); got != 0 {
		t.Errorf("SubscriberCount = %d after close, want 0", got)
	}
}

func TestView_WatchSignalledOnPublish(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	defer v.Close()

	sub := v.Watch()
	defer sub.Unsubscribe()

	v.Start(context.Background())

	select {
	case <-sub.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no watch signal after initial publish")
	}

	insertLift(t, st, "op-1", "2025-06-01", "08:00", 20)
	select {
	case <-sub.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no watch signal after write")
	}
}

func TestView_FetchErrorKeepsSnapshot(t *testing.T) {
	st := testStore(t)
	fail := atomic.Bool{}
	sentinel := errors.New("boom")
	fetch := func(ctx context.Context) (any, error) {
		if fail.Load() {
			return nil, sentinel
		}
		return countFetch(st)(ctx)
	}

	v := New("lifts", st, []store.Collection{store.LiftLogs}, fetch)
	defer v.Close()
	v.Start(context.Background())
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	fail.Store(true)
	insertLift(t, st, "op-1", "2025-06-01", "08:00", 20)

	waitFor(t, "error to surface", func() bool { return v.Err() != nil })
	if !errors.Is(v.Err(), sentinel) {
		t.Errorf("Err() = %v, want sentinel", v.Err())
	}
	if got := v.Snapshot().(int64); got != 0 {
		t.Errorf("Snapshot() = %d after failed recompute, want previous value 0", got)
	}
	if got := v.Version(); got != 1 {
		t.Errorf("Version() = %d after failed recompute, want 1", got)
	}
}

func TestView_CloseReleasesSubscriptions(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	v.Start(context.Background())
	waitFor(t, "initial snapshot", func() bool { return v.Version() >= 1 })

	if got := st.Notifier().SubscriberCount(store.LiftLogs); got != 1 {
		t.Fatalf("SubscriberCount = %d before close, want 1", got)
	}

	v.Close()
	v.Close() // idempotent

	if got := st.Notifier().SubscriberCount(store.LiftLogs); got != 0 {
		t.Errorf("SubscriberCount = %d after close, want 0", got)
	}
}

func TestView_CloseBeforeStart(t *testing.T) {
	st := testStore(t)
	v := New("lifts", st, []store.Collection{store.LiftLogs}, countFetch(st))
	v.Close()

	if got := st.Notifier().SubscriberCount(store.LiftLogs); got != 0 {
		t.Errorf("SubscriberCount = %d, want 0", got)
	}
}

func TestRegistry(t *testing.T) {
	st := testStore(t)
	reg := NewRegistry()
	a := New("a", st, []store.Collection{store.LiftLogs}, countFetch(st))
	b := New("b", st, []store.Collection{store.DelayRecords}, countFetch(st))
	reg.Register(a)
	reg.Register(b)

	if reg.Get("a") != a || reg.Get("b") != b {
		t.Fatal("Get did not return registered views")
	}
	if reg.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}

	reg.Start(context.Background())
	waitFor(t, "both views", func() bool { return a.Version() >= 1 && b.Version() >= 1 })

	reg.Close()
	if got := st.Notifier().SubscriberCount(store.LiftLogs); got != 0 {
		t.Errorf("SubscriberCount = %d after registry close, want 0", got)
	}
}
