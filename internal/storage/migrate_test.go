// ABOUTME: Tests for the versioned migration engine and seed catalog.
// ABOUTME: Covers idempotence, version tracking, and seed guarding.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/fittracker/internal/models"
)

func TestMigrateFreshDatabase(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	want := migrations[len(migrations)-1].version
	if version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	before, _ := db.SchemaVersion()
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	after, _ := db.SchemaVersion()

	if before != after {
		t.Errorf("schema version changed on replay: %d -> %d", before, after)
	}
}

func TestMigrateCreatesUsableTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"exercises", "workouts", "workout_exercises", "sets", "meta"} {
		var count int
		if err := db.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}
}

func TestSchemaVersionDefaultsToZero(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fittracker.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := db.ensureMetaTable(); err != nil {
		t.Fatalf("ensureMetaTable failed: %v", err)
	}

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("unmigrated schema version = %d, want 0", version)
	}
}

func TestSeedPopulatesEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	exercises, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != len(baseExercises) {
		t.Errorf("seeded %d exercises, want %d", len(exercises), len(baseExercises))
	}
	for _, ex := range exercises {
		if ex.IsCustom {
			t.Errorf("seeded exercise %q marked custom", ex.Name)
		}
	}
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	db := setupTestDB(t)

	created, err := db.CreateExercise(models.CreateExerciseInput{Name: "Zercher Squat"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if err := db.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	exercises, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 1 {
		t.Fatalf("expected seed to skip non-empty table, got %d exercises", len(exercises))
	}
	if exercises[0].ID != created.ID {
		t.Error("existing exercise was replaced by seeding")
	}
}

func TestResetSeeds(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateExercise(models.CreateExerciseInput{Name: "Zercher Squat"}); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if err := db.ResetSeeds(); err != nil {
		t.Fatalf("ResetSeeds failed: %v", err)
	}

	exercises, _ := db.ListExercises()
	if len(exercises) != len(baseExercises) {
		t.Errorf("after reset: %d exercises, want %d", len(exercises), len(baseExercises))
	}
}
