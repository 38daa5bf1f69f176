// ABOUTME: Tests for the set repository.
// ABOUTME: Covers setIndex assignment, patch updates, renumbering, and rounding.
package storage

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

// setupWorkoutExercise creates the workout/exercise scaffolding a set needs.
func setupWorkoutExercise(t *testing.T, db *DB) *models.WorkoutExercise {
	t.Helper()

	w, err := db.CreateWorkout(models.CreateWorkoutInput{UserID: "local-user"})
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	ex, err := db.CreateExercise(models.CreateExerciseInput{Name: "Back Squat"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	we, err := db.AddExerciseToWorkout(w.ID, ex.ID, nil)
	if err != nil {
		t.Fatalf("AddExerciseToWorkout failed: %v", err)
	}
	return we
}

func TestCreateSetAssignsSequentialIndexes(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	for i := 0; i < 3; i++ {
		s, err := db.CreateSet(models.CreateSetInput{
			WorkoutExerciseID: we.ID,
			Weight:            floatPtr(100),
			Reps:              intPtr(5),
		})
		if err != nil {
			t.Fatalf("CreateSet failed: %v", err)
		}
		if s.SetIndex != i {
			t.Errorf("set %d: SetIndex = %d, want %d", i, s.SetIndex, i)
		}
	}
}

func TestCreateSetExplicitIndex(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	s, err := db.CreateSet(models.CreateSetInput{
		WorkoutExerciseID: we.ID,
		SetIndex:          intPtr(4),
	})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	if s.SetIndex != 4 {
		t.Errorf("SetIndex = %d, want 4", s.SetIndex)
	}
}

func TestCreateSetRoundsWeightAndRPE(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	s, err := db.CreateSet(models.CreateSetInput{
		WorkoutExerciseID: we.ID,
		Weight:            floatPtr(102.4999),
		Reps:              intPtr(3),
		RPE:               floatPtr(8.25),
	})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	if s.Weight == nil || *s.Weight != 102.5 {
		t.Errorf("Weight = %v, want 102.5", s.Weight)
	}
	if s.RPE == nil || *s.RPE != 8.3 {
		t.Errorf("RPE = %v, want 8.3", s.RPE)
	}
}

func TestListSetsOrderedByIndex(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	for _, idx := range []int{2, 0, 1} {
		if _, err := db.CreateSet(models.CreateSetInput{
			WorkoutExerciseID: we.ID,
			SetIndex:          intPtr(idx),
		}); err != nil {
			t.Fatalf("CreateSet failed: %v", err)
		}
	}

	sets, err := db.ListSets(we.ID)
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	for i, s := range sets {
		if s.SetIndex != i {
			t.Errorf("position %d: SetIndex = %d", i, s.SetIndex)
		}
	}
}

func TestUpdateSetMergesPatch(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	s, _ := db.CreateSet(models.CreateSetInput{
		WorkoutExerciseID: we.ID,
		Weight:            floatPtr(100),
		Reps:              intPtr(5),
		Notes:             strPtr("paused"),
	})

	updated, err := db.UpdateSet(s.ID, models.UpdateSetInput{Reps: intPtr(6)})
	if err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if updated.Reps == nil || *updated.Reps != 6 {
		t.Errorf("Reps = %v, want 6", updated.Reps)
	}
	if updated.Weight == nil || *updated.Weight != 100 {
		t.Errorf("Weight = %v, want 100 (unchanged)", updated.Weight)
	}
	if updated.Notes == nil || *updated.Notes != "paused" {
		t.Errorf("Notes = %v, want unchanged", updated.Notes)
	}
}

func TestUpdateSetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)

	updated, err := db.UpdateSet(uuid.New(), models.UpdateSetInput{Reps: intPtr(1)})
	if err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for unknown set, got %+v", updated)
	}
}

func TestRemoveSetRenumbersSurvivors(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		s, err := db.CreateSet(models.CreateSetInput{
			WorkoutExerciseID: we.ID,
			Reps:              intPtr(10 + i),
		})
		if err != nil {
			t.Fatalf("CreateSet failed: %v", err)
		}
		ids = append(ids, s.ID)
	}

	if err := db.RemoveSet(ids[1]); err != nil {
		t.Fatalf("RemoveSet failed: %v", err)
	}

	sets, err := db.ListSets(we.ID)
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	wantReps := []int{10, 12, 13}
	for i, s := range sets {
		if s.SetIndex != i {
			t.Errorf("position %d: SetIndex = %d, want %d", i, s.SetIndex, i)
		}
		if s.Reps == nil || *s.Reps != wantReps[i] {
			t.Errorf("position %d: Reps = %v, want %d", i, s.Reps, wantReps[i])
		}
	}
}

func TestRemoveSetIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.RemoveSet(uuid.New()); err != nil {
		t.Errorf("removing an unknown set should be a no-op, got %v", err)
	}
}

func TestRemoveAllSets(t *testing.T) {
	db := setupTestDB(t)
	we := setupWorkoutExercise(t, db)

	for i := 0; i < 3; i++ {
		if _, err := db.CreateSet(models.CreateSetInput{WorkoutExerciseID: we.ID}); err != nil {
			t.Fatalf("CreateSet failed: %v", err)
		}
	}

	if err := db.RemoveAllSets(we.ID); err != nil {
		t.Fatalf("RemoveAllSets failed: %v", err)
	}
	sets, _ := db.ListSets(we.ID)
	if len(sets) != 0 {
		t.Errorf("expected no sets, got %d", len(sets))
	}
}

func TestGetSetNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetSet(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
