// Package store adapts the relational record store for the rest of the
// system: typed queries, acknowledged writes, and per-collection change
// notification. Every successful write publishes a change event for its
// collection, so in-process writers and external writers feed the same
// recomputation path.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"gorm.io/gorm"
)

// Collection names one of the record collections.
type Collection string

const (
	Profiles           Collection = "profiles"
	UserRoles          Collection = "user_roles"
	WorkShifts         Collection = "work_shifts"
	LiftLogs           Collection = "lift_logs"
	DelayRecords       Collection = "delay_records"
	Vehicles           Collection = "vehicles"
	PerformanceRatings Collection = "performance_ratings"
)

// StoreError wraps an underlying fetch/insert/update failure. The original
// driver message is preserved for the caller; nothing is retried here.
type StoreError struct {
	Op         string // "query", "insert", "update"
	Collection Collection
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store provides record access over a single GORM connection.
type Store struct {
	db       *gorm.DB
	notifier *Notifier
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db, notifier: NewNotifier()}
}

// DB exposes the underlying connection for migration and test setup.
func (s *Store) DB() *gorm.DB { return s.db }

// NewID creates a unique record ID with the given prefix (8-char hex).
func NewID(prefix string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("store: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}

func queryErr(c Collection, err error) error {
	return &StoreError{Op: "query", Collection: c, Err: err}
}

func insertErr(c Collection, err error) error {
	return &StoreError{Op: "insert", Collection: c, Err: err}
}

func updateErr(c Collection, err error) error {
	return &StoreError{Op: "update", Collection: c, Err: err}
}
