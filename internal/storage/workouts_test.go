// ABOUTME: Tests for workout and workout-exercise repository operations.
// ABOUTME: Covers completion semantics, ordering, limits, and cascade deletes.
package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

func TestCreateWorkoutRequiresUserID(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreateWorkout(models.CreateWorkoutInput{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for missing userId, got %v", err)
	}
}

func TestCreateWorkoutDefaults(t *testing.T) {
	db := setupTestDB(t)

	before := time.Now().Add(-time.Second)
	w, err := db.CreateWorkout(models.CreateWorkoutInput{UserID: "local-user"})
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	after := time.Now().Add(time.Second)

	if w.StartedAt.Before(before) || w.StartedAt.After(after) {
		t.Errorf("StartedAt = %v, want roughly now", w.StartedAt)
	}
	if w.EndedAt != nil {
		t.Error("new workout should be open")
	}
	if !w.Open() {
		t.Error("Open() should report true for a workout without endedAt")
	}
}

func TestCreateWorkoutExplicitStartedAt(t *testing.T) {
	db := setupTestDB(t)

	started := time.Now().Add(-2 * time.Hour).Truncate(time.Millisecond)
	w, err := db.CreateWorkout(models.CreateWorkoutInput{
		UserID:    "local-user",
		Type:      strPtr("strength"),
		StartedAt: &started,
	})
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	if !w.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", w.StartedAt, started)
	}
	if w.Type == nil || *w.Type != "strength" {
		t.Errorf("Type = %v, want strength", w.Type)
	}
}

func TestCompleteWorkoutPreservesNotesWhenNil(t *testing.T) {
	db := setupTestDB(t)

	w, _ := db.CreateWorkout(models.CreateWorkoutInput{
		UserID: "local-user",
		Notes:  strPtr("leg day"),
	})

	done, err := db.CompleteWorkout(models.CompleteWorkoutInput{WorkoutID: w.ID})
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if done.EndedAt == nil {
		t.Fatal("expected endedAt to be set")
	}
	if done.Notes == nil || *done.Notes != "leg day" {
		t.Errorf("Notes = %v, want preserved %q", done.Notes, "leg day")
	}
}

func TestCompleteWorkoutOverwritesNotes(t *testing.T) {
	db := setupTestDB(t)

	w, _ := db.CreateWorkout(models.CreateWorkoutInput{
		UserID: "local-user",
		Notes:  strPtr("leg day"),
	})

	done, err := db.CompleteWorkout(models.CompleteWorkoutInput{
		WorkoutID: w.ID,
		Notes:     strPtr("felt strong"),
	})
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if done.Notes == nil || *done.Notes != "felt strong" {
		t.Errorf("Notes = %v, want overwritten %q", done.Notes, "felt strong")
	}
}

func TestCompleteWorkoutMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)

	done, err := db.CompleteWorkout(models.CompleteWorkoutInput{WorkoutID: uuid.New()})
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if done != nil {
		t.Errorf("expected nil for unknown workout, got %+v", done)
	}
}

func TestListRecentWorkouts(t *testing.T) {
	db := setupTestDB(t)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		started := base.Add(time.Duration(i) * time.Hour)
		if _, err := db.CreateWorkout(models.CreateWorkoutInput{
			UserID:    "local-user",
			StartedAt: &started,
		}); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}
	}

	recent, err := db.ListRecentWorkouts(0)
	if err != nil {
		t.Fatalf("ListRecentWorkouts failed: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("default limit: got %d workouts, want 10", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].StartedAt.After(recent[i-1].StartedAt) {
			t.Errorf("workouts not in descending startedAt order at %d", i)
		}
	}

	three, err := db.ListRecentWorkouts(3)
	if err != nil {
		t.Fatalf("ListRecentWorkouts failed: %v", err)
	}
	if len(three) != 3 {
		t.Errorf("explicit limit: got %d workouts, want 3", len(three))
	}
}

func TestAddExerciseToWorkoutAssignsDenseOrder(t *testing.T) {
	db := setupTestDB(t)

	w, _ := db.CreateWorkout(models.CreateWorkoutInput{UserID: "local-user"})
	var exIDs []uuid.UUID
	for _, name := range []string{"Squat", "Bench", "Row"} {
		ex, err := db.CreateExercise(models.CreateExerciseInput{Name: name})
		if err != nil {
			t.Fatalf("CreateExercise failed: %v", err)
		}
		exIDs = append(exIDs, ex.ID)
	}

	for i, exID := range exIDs {
		we, err := db.AddExerciseToWorkout(w.ID, exID, nil)
		if err != nil {
			t.Fatalf("AddExerciseToWorkout failed: %v", err)
		}
		if we.OrderIndex != i {
			t.Errorf("exercise %d: OrderIndex = %d, want %d", i, we.OrderIndex, i)
		}
	}

	listed, err := db.ListWorkoutExercises(w.ID)
	if err != nil {
		t.Fatalf("ListWorkoutExercises failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("got %d workout exercises, want 3", len(listed))
	}
	for i, we := range listed {
		if we.OrderIndex != i {
			t.Errorf("position %d: OrderIndex = %d", i, we.OrderIndex)
		}
		if we.ExerciseID != exIDs[i] {
			t.Errorf("position %d: ExerciseID mismatch", i)
		}
	}
}

func TestAddExerciseToWorkoutExplicitOrder(t *testing.T) {
	db := setupTestDB(t)

	w, _ := db.CreateWorkout(models.CreateWorkoutInput{UserID: "local-user"})
	ex, _ := db.CreateExercise(models.CreateExerciseInput{Name: "Dip"})

	we, err := db.AddExerciseToWorkout(w.ID, ex.ID, intPtr(5))
	if err != nil {
		t.Fatalf("AddExerciseToWorkout failed: %v", err)
	}
	if we.OrderIndex != 5 {
		t.Errorf("OrderIndex = %d, want 5", we.OrderIndex)
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := setupTestDB(t)

	w, _ := db.CreateWorkout(models.CreateWorkoutInput{UserID: "local-user"})
	ex, _ := db.CreateExercise(models.CreateExerciseInput{Name: "Curl"})
	we, _ := db.AddExerciseToWorkout(w.ID, ex.ID, nil)
	set, err := db.CreateSet(models.CreateSetInput{
		WorkoutExerciseID: we.ID,
		Weight:            floatPtr(20),
		Reps:              intPtr(12),
	})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}

	if err := db.DeleteWorkout(w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	if _, err := db.GetWorkout(w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected workout gone, got %v", err)
	}
	listed, _ := db.ListWorkoutExercises(w.ID)
	if len(listed) != 0 {
		t.Errorf("expected workout exercises cascaded, got %d", len(listed))
	}
	if _, err := db.GetSet(set.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected set cascaded, got %v", err)
	}

	if err := db.DeleteWorkout(w.ID); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}
