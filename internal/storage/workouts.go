// ABOUTME: Workout and WorkoutExercise repository operations for SQLite.
// ABOUTME: Manages orderIndex assignment and completion semantics.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

const workoutColumns = `id, userId, type, startedAt, endedAt, notes`

// CreateWorkout stores a new workout. UserID is required; StartedAt
// defaults to the current time. The freshly read record is returned.
func (d *DB) CreateWorkout(input models.CreateWorkoutInput) (*models.Workout, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	id := uuid.New()
	startedAt := time.Now()
	if input.StartedAt != nil {
		startedAt = *input.StartedAt
	}

	_, err := d.db.Exec(
		`INSERT INTO workouts (id, userId, type, startedAt, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		id.String(), input.UserID, input.Type, startedAt.UnixMilli(), input.Notes)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	return d.GetWorkout(id)
}

// GetWorkout retrieves a workout by ID. Returns ErrNotFound if absent.
func (d *DB) GetWorkout(id uuid.UUID) (*models.Workout, error) {
	row := d.db.QueryRow(
		`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id.String())
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// CompleteWorkout sets endedAt (default: now) and, when Notes is non-nil,
// overwrites the stored notes; nil Notes preserves them. Returns the
// refreshed record, or nil with no error when the workout does not exist.
func (d *DB) CompleteWorkout(input models.CompleteWorkoutInput) (*models.Workout, error) {
	endedAt := time.Now()
	if input.EndedAt != nil {
		endedAt = *input.EndedAt
	}

	_, err := d.db.Exec(
		`UPDATE workouts SET endedAt = ?, notes = COALESCE(?, notes) WHERE id = ?`,
		endedAt.UnixMilli(), input.Notes, input.WorkoutID.String())
	if err != nil {
		return nil, fmt.Errorf("complete workout: %w", err)
	}

	w, err := d.GetWorkout(input.WorkoutID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return w, err
}

// ListRecentWorkouts returns workouts ordered by startedAt descending,
// capped at limit (default 10 when limit <= 0).
func (d *DB) ListRecentWorkouts(limit int) ([]*models.Workout, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT `+workoutColumns+` FROM workouts ORDER BY startedAt DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkoutRow(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// DeleteWorkout removes a workout; its workout-exercises and their sets
// go with it via cascade. Idempotent.
func (d *DB) DeleteWorkout(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM workouts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// AddExerciseToWorkout inserts one exercise appearance into a workout.
// When orderIndex is nil it is assigned one past the workout's current
// maximum, starting at 0 for the first exercise.
func (d *DB) AddExerciseToWorkout(workoutID, exerciseID uuid.UUID, orderIndex *int) (*models.WorkoutExercise, error) {
	next := 0
	if orderIndex != nil {
		next = *orderIndex
	} else {
		var maxIndex sql.NullInt64
		err := d.db.QueryRow(
			`SELECT MAX(orderIndex) FROM workout_exercises WHERE workoutId = ?`,
			workoutID.String()).Scan(&maxIndex)
		if err != nil {
			return nil, fmt.Errorf("resolve order index: %w", err)
		}
		if maxIndex.Valid {
			next = int(maxIndex.Int64) + 1
		}
	}

	we := &models.WorkoutExercise{
		ID:         uuid.New(),
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		OrderIndex: next,
	}
	_, err := d.db.Exec(
		`INSERT INTO workout_exercises (id, workoutId, exerciseId, orderIndex)
		 VALUES (?, ?, ?, ?)`,
		we.ID.String(), workoutID.String(), exerciseID.String(), next)
	if err != nil {
		return nil, fmt.Errorf("add exercise to workout: %w", err)
	}

	return we, nil
}

// ListWorkoutExercises returns a workout's exercises ordered by orderIndex.
func (d *DB) ListWorkoutExercises(workoutID uuid.UUID) ([]*models.WorkoutExercise, error) {
	rows, err := d.db.Query(
		`SELECT id, workoutId, exerciseId, orderIndex FROM workout_exercises
		 WHERE workoutId = ? ORDER BY orderIndex ASC`,
		workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	var result []*models.WorkoutExercise
	for rows.Next() {
		var we models.WorkoutExercise
		var idStr, workoutIDStr, exerciseIDStr string
		if err := rows.Scan(&idStr, &workoutIDStr, &exerciseIDStr, &we.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		we.ID, _ = uuid.Parse(idStr)
		we.WorkoutID, _ = uuid.Parse(workoutIDStr)
		we.ExerciseID, _ = uuid.Parse(exerciseIDStr)
		result = append(result, &we)
	}
	return result, rows.Err()
}

// scanWorkout scans a single row into a Workout.
func scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var idStr string
	var wType, notes sql.NullString
	var startedAt int64
	var endedAt sql.NullInt64

	if err := row.Scan(&idStr, &w.UserID, &wType, &startedAt, &endedAt, &notes); err != nil {
		return nil, err
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Type = nullString(wType)
	w.Notes = nullString(notes)
	w.StartedAt = time.UnixMilli(startedAt)
	if endedAt.Valid {
		t := time.UnixMilli(endedAt.Int64)
		w.EndedAt = &t
	}

	return &w, nil
}

// scanWorkoutRow scans the current row of a multi-row result set.
func scanWorkoutRow(rows *sql.Rows) (*models.Workout, error) {
	var w models.Workout
	var idStr string
	var wType, notes sql.NullString
	var startedAt int64
	var endedAt sql.NullInt64

	if err := rows.Scan(&idStr, &w.UserID, &wType, &startedAt, &endedAt, &notes); err != nil {
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Type = nullString(wType)
	w.Notes = nullString(notes)
	w.StartedAt = time.UnixMilli(startedAt)
	if endedAt.Valid {
		t := time.UnixMilli(endedAt.Int64)
		w.EndedAt = &t
	}

	return &w, nil
}
