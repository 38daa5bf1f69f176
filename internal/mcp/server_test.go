// ABOUTME: Tests for the MCP tool and resource handlers.
// ABOUTME: Exercises handlers directly against a temp store and session.
package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/fittracker/internal/session"
	"github.com/harperreed/fittracker/internal/storage"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fittracker.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := db.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	sessions, err := session.NewStore(nil)
	if err != nil {
		t.Fatalf("session.NewStore failed: %v", err)
	}

	srv, err := NewServer(db, sessions, "local-user")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv
}

func TestListExercises(t *testing.T) {
	srv := setupServer(t)

	_, out, err := srv.handleListExercises(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleListExercises failed: %v", err)
	}
	exercises, ok := out.([]exerciseOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(exercises) == 0 {
		t.Error("expected seeded catalog")
	}
}

func TestSearchExercisesTool(t *testing.T) {
	srv := setupServer(t)

	_, out, err := srv.handleSearchExercises(context.Background(), nil,
		searchExercisesInput{Query: "squat"})
	if err != nil {
		t.Fatalf("handleSearchExercises failed: %v", err)
	}
	exercises, ok := out.([]exerciseOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	found := false
	for _, ex := range exercises {
		if ex.Name == "Back Squat" {
			found = true
		}
	}
	if !found {
		t.Error("expected Back Squat in squat search")
	}
}

func TestAddExerciseTool(t *testing.T) {
	srv := setupServer(t)

	_, out, err := srv.handleAddExercise(context.Background(), nil, addExerciseInput{
		Name:        "Sled Push",
		Category:    "Legs",
		MuscleGroup: "Quadriceps",
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if !out.IsCustom {
		t.Error("added exercise should be custom")
	}
	if out.Name != "Sled Push" {
		t.Errorf("Name = %q", out.Name)
	}
}

func TestLogSetRequiresActiveSession(t *testing.T) {
	srv := setupServer(t)

	_, _, err := srv.handleLogSet(context.Background(), nil, logSetInput{
		ExerciseName: "Back Squat",
	})
	if !errors.Is(err, storage.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestWorkoutSessionRoundTrip(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	if _, _, err := srv.handleStartWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	weight := 100.0
	reps := 5
	var setIDs []string
	var exerciseID string
	for i := 0; i < 3; i++ {
		_, out, err := srv.handleLogSet(ctx, nil, logSetInput{
			ExerciseName: "Back Squat",
			Weight:       &weight,
			Reps:         &reps,
		})
		if err != nil {
			t.Fatalf("handleLogSet failed: %v", err)
		}
		if out.SetIndex != i {
			t.Errorf("set %d: SetIndex = %d", i, out.SetIndex)
		}
		setIDs = append(setIDs, out.ID)
		exerciseID = out.ExerciseID
	}

	// Drop the middle set and bump the last one.
	if _, _, err := srv.handleRemoveSet(ctx, nil, removeSetInput{
		ExerciseID: exerciseID,
		SetID:      setIDs[1],
	}); err != nil {
		t.Fatalf("handleRemoveSet failed: %v", err)
	}
	newReps := 6
	if _, _, err := srv.handleUpdateSet(ctx, nil, updateSetInput{
		ExerciseID: exerciseID,
		SetID:      setIDs[2],
		Reps:       &newReps,
	}); err != nil {
		t.Fatalf("handleUpdateSet failed: %v", err)
	}

	_, finished, err := srv.handleFinishWorkout(ctx, nil, finishWorkoutInput{
		Notes: "solid session",
	})
	if err != nil {
		t.Fatalf("handleFinishWorkout failed: %v", err)
	}
	if finished.WorkoutID == "" {
		t.Fatal("expected a workout ID")
	}
	if srv.sessions.Active() {
		t.Error("session should be cleared after finish")
	}

	_, detail, err := srv.handleGetWorkout(ctx, nil, getWorkoutInput{ID: finished.WorkoutID})
	if err != nil {
		t.Fatalf("handleGetWorkout failed: %v", err)
	}
	d, ok := detail.(workoutDetailOutput)
	if !ok {
		t.Fatalf("unexpected output type %T", detail)
	}
	if d.Workout.Notes != "solid session" {
		t.Errorf("Notes = %q", d.Workout.Notes)
	}
	if len(d.Exercises) != 1 {
		t.Fatalf("got %d exercises, want 1", len(d.Exercises))
	}
	if d.Exercises[0].Name != "Back Squat" {
		t.Errorf("exercise name = %q", d.Exercises[0].Name)
	}
	if len(d.Exercises[0].Sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(d.Exercises[0].Sets))
	}
	last := d.Exercises[0].Sets[1]
	if last.Reps == nil || *last.Reps != 6 {
		t.Errorf("last set reps = %v, want 6", last.Reps)
	}
}

func TestDiscardWorkout(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	if _, _, err := srv.handleStartWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}
	weight := 60.0
	if _, _, err := srv.handleLogSet(ctx, nil, logSetInput{
		ExerciseName: "Deadlift",
		Weight:       &weight,
	}); err != nil {
		t.Fatalf("handleLogSet failed: %v", err)
	}

	if _, _, err := srv.handleDiscardWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleDiscardWorkout failed: %v", err)
	}
	if srv.sessions.Active() {
		t.Error("session should be idle after discard")
	}

	_, out, err := srv.handleListWorkouts(ctx, nil, listWorkoutsInput{})
	if err != nil {
		t.Fatalf("handleListWorkouts failed: %v", err)
	}
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("expected empty-list message, got %T", out)
	}
}

func TestFinishWorkoutWithoutSession(t *testing.T) {
	srv := setupServer(t)

	_, _, err := srv.handleFinishWorkout(context.Background(), nil, finishWorkoutInput{})
	if !errors.Is(err, storage.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestStartRestTimerValidation(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	if _, _, err := srv.handleStartWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}

	_, _, err := srv.handleStartRestTimer(ctx, nil, startRestTimerInput{Seconds: -5})
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	_, out, err := srv.handleStartRestTimer(ctx, nil, startRestTimerInput{Seconds: 90})
	if err != nil {
		t.Fatalf("handleStartRestTimer failed: %v", err)
	}
	if !strings.Contains(out.Message, "90") {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestSessionResource(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	result, err := srv.handleSessionResource(ctx, nil)
	if err != nil {
		t.Fatalf("handleSessionResource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"active": false`) {
		t.Errorf("idle session resource = %s", result.Contents[0].Text)
	}

	if _, _, err := srv.handleStartWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}
	reps := 8
	if _, _, err := srv.handleLogSet(ctx, nil, logSetInput{
		ExerciseName: "Pull-Up",
		Reps:         &reps,
	}); err != nil {
		t.Fatalf("handleLogSet failed: %v", err)
	}

	result, err = srv.handleSessionResource(ctx, nil)
	if err != nil {
		t.Fatalf("handleSessionResource failed: %v", err)
	}
	text := result.Contents[0].Text
	if !strings.Contains(text, `"active": true`) {
		t.Errorf("active session resource = %s", text)
	}
	if !strings.Contains(text, "Pull-Up") {
		t.Errorf("expected exercise name in resource, got %s", text)
	}
}

func TestRecentResource(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	if _, _, err := srv.handleStartWorkout(ctx, nil, struct{}{}); err != nil {
		t.Fatalf("handleStartWorkout failed: %v", err)
	}
	reps := 10
	if _, _, err := srv.handleLogSet(ctx, nil, logSetInput{
		ExerciseName: "Lunge",
		Reps:         &reps,
	}); err != nil {
		t.Fatalf("handleLogSet failed: %v", err)
	}
	if _, _, err := srv.handleFinishWorkout(ctx, nil, finishWorkoutInput{}); err != nil {
		t.Fatalf("handleFinishWorkout failed: %v", err)
	}

	result, err := srv.handleRecentResource(ctx, nil)
	if err != nil {
		t.Fatalf("handleRecentResource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"count": 1`) {
		t.Errorf("recent resource = %s", result.Contents[0].Text)
	}
}
