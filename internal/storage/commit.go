// ABOUTME: Commit pipeline materializing a session draft into the store.
// ABOUTME: One transaction spans the workout, its exercises, and their sets.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

// CommitOptions carries caller-supplied workout metadata for a commit.
// Zero values fall back to defaults: UserID "local-user", Type "strength",
// Notes null.
type CommitOptions struct {
	UserID string
	Type   string
	Notes  *string
}

// CommitResult reports the identifiers a successful commit produced.
type CommitResult struct {
	WorkoutID uuid.UUID
	EndedAt   time.Time
}

// SaveWorkoutFromDraft transactionally writes a session draft to the
// relational store: the workout row, one workout-exercise row per draft
// exercise that has at least one set (dense orderIndex from 0, in draft
// insertion order), and one set row per draft set. Exercises with zero
// sets are skipped entirely. Any failure rolls back every write.
//
// Returns ErrNoActiveSession when the draft was never started. An empty
// draft is accepted and produces a workout with no exercises.
func (d *DB) SaveWorkoutFromDraft(draft models.SessionDraft, opts CommitOptions) (*CommitResult, error) {
	if draft.StartedAt == nil {
		return nil, ErrNoActiveSession
	}

	userID := opts.UserID
	if userID == "" {
		userID = "local-user"
	}
	workoutType := opts.Type
	if workoutType == "" {
		workoutType = "strength"
	}

	workoutID := uuid.New()
	if draft.WorkoutID != nil {
		workoutID = *draft.WorkoutID
	}
	endedAt := time.Now()

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	if err := upsertWorkout(tx, workoutID, userID, workoutType,
		*draft.StartedAt, endedAt, opts.Notes); err != nil {
		return nil, err
	}

	orderIndex := 0
	for _, ex := range draft.Exercises {
		if len(ex.Sets) == 0 {
			continue
		}

		workoutExerciseID := uuid.New()
		_, err := tx.Exec(
			`INSERT INTO workout_exercises (id, workoutId, exerciseId, orderIndex)
			 VALUES (?, ?, ?, ?)`,
			workoutExerciseID.String(), workoutID.String(), ex.ExerciseID.String(), orderIndex)
		if err != nil {
			return nil, fmt.Errorf("commit workout exercise %s: %w", ex.ExerciseID, err)
		}
		orderIndex++

		for i, set := range ex.Sets {
			setIndex := set.SetIndex
			if setIndex < 0 {
				setIndex = i
			}
			_, err := tx.Exec(
				`INSERT INTO sets (id, workoutExerciseId, setIndex, weight, reps, rpe, restSeconds, notes)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), workoutExerciseID.String(), setIndex,
				roundPtr(set.Weight), set.Reps, roundPtr(set.RPE),
				set.RestSeconds, set.Notes)
			if err != nil {
				return nil, fmt.Errorf("commit set %d of exercise %s: %w", i, ex.ExerciseID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit workout: %w", err)
	}

	return &CommitResult{WorkoutID: workoutID, EndedAt: endedAt}, nil
}

// upsertWorkout writes the workout row with explicit two-branch
// insert-or-update semantics, so a re-commit of an existing workout ID
// updates in place instead of replacing the row.
func upsertWorkout(tx *sql.Tx, id uuid.UUID, userID, workoutType string, startedAt, endedAt time.Time, notes *string) error {
	var one int
	err := tx.QueryRow(`SELECT 1 FROM workouts WHERE id = ?`, id.String()).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(
			`INSERT INTO workouts (id, userId, type, startedAt, endedAt, notes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id.String(), userID, workoutType, startedAt.UnixMilli(), endedAt.UnixMilli(), notes)
		if err != nil {
			return fmt.Errorf("commit workout row: %w", err)
		}
	case err != nil:
		return fmt.Errorf("commit workout row: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE workouts SET userId = ?, type = ?, startedAt = ?, endedAt = ?, notes = ?
			 WHERE id = ?`,
			userID, workoutType, startedAt.UnixMilli(), endedAt.UnixMilli(), notes, id.String())
		if err != nil {
			return fmt.Errorf("commit workout row: %w", err)
		}
	}
	return nil
}
