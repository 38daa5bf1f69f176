// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB for isolated, fully migrated databases.
package storage

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fittracker.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	return db
}

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
