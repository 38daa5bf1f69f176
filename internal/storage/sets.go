// ABOUTME: Set repository operations for SQLite storage.
// ABOUTME: Keeps setIndex dense per workout-exercise and normalizes numerics.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

const setColumns = `id, workoutExerciseId, setIndex, weight, reps, rpe, restSeconds, notes`

// CreateSet stores a new set. When SetIndex is nil it is assigned one past
// the workout-exercise's current maximum. Weight and RPE are rounded to
// one decimal before storage. The freshly read record is returned.
func (d *DB) CreateSet(input models.CreateSetInput) (*models.Set, error) {
	next := 0
	if input.SetIndex != nil {
		next = *input.SetIndex
	} else {
		var maxIndex sql.NullInt64
		err := d.db.QueryRow(
			`SELECT MAX(setIndex) FROM sets WHERE workoutExerciseId = ?`,
			input.WorkoutExerciseID.String()).Scan(&maxIndex)
		if err != nil {
			return nil, fmt.Errorf("resolve set index: %w", err)
		}
		if maxIndex.Valid {
			next = int(maxIndex.Int64) + 1
		}
	}

	id := uuid.New()
	_, err := d.db.Exec(
		`INSERT INTO sets (id, workoutExerciseId, setIndex, weight, reps, rpe, restSeconds, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), input.WorkoutExerciseID.String(), next,
		roundPtr(input.Weight), input.Reps, roundPtr(input.RPE),
		input.RestSeconds, input.Notes)
	if err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}

	return d.GetSet(id)
}

// GetSet retrieves a set by ID. Returns ErrNotFound if absent.
func (d *DB) GetSet(id uuid.UUID) (*models.Set, error) {
	row := d.db.QueryRow(`SELECT `+setColumns+` FROM sets WHERE id = ?`, id.String())
	s, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("set %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get set: %w", err)
	}
	return s, nil
}

// ListSets returns a workout-exercise's sets ordered by setIndex.
func (d *DB) ListSets(workoutExerciseID uuid.UUID) ([]*models.Set, error) {
	rows, err := d.db.Query(
		`SELECT `+setColumns+` FROM sets WHERE workoutExerciseId = ? ORDER BY setIndex ASC`,
		workoutExerciseID.String())
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []*models.Set
	for rows.Next() {
		s, err := scanSetRow(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// UpdateSet merges the patch onto the current row and writes every
// settable column back. Returns nil with no error when the ID is absent.
func (d *DB) UpdateSet(id uuid.UUID, patch models.UpdateSetInput) (*models.Set, error) {
	current, err := d.GetSet(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	next := *current
	if patch.SetIndex != nil {
		next.SetIndex = *patch.SetIndex
	}
	if patch.Weight != nil {
		next.Weight = patch.Weight
	}
	if patch.Reps != nil {
		next.Reps = patch.Reps
	}
	if patch.RPE != nil {
		next.RPE = patch.RPE
	}
	if patch.RestSeconds != nil {
		next.RestSeconds = patch.RestSeconds
	}
	if patch.Notes != nil {
		next.Notes = patch.Notes
	}

	_, err = d.db.Exec(
		`UPDATE sets
		 SET setIndex = ?, weight = ?, reps = ?, rpe = ?, restSeconds = ?, notes = ?
		 WHERE id = ?`,
		next.SetIndex, roundPtr(next.Weight), next.Reps, roundPtr(next.RPE),
		next.RestSeconds, next.Notes, id.String())
	if err != nil {
		return nil, fmt.Errorf("update set: %w", err)
	}

	return d.GetSet(id)
}

// RemoveSet deletes a set and renumbers the surviving sets of the same
// workout-exercise to a contiguous zero-based sequence. Idempotent:
// removing a missing ID is not an error.
func (d *DB) RemoveSet(id uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin remove set: %w", err)
	}
	defer tx.Rollback()

	var workoutExerciseID string
	err = tx.QueryRow(
		`SELECT workoutExerciseId FROM sets WHERE id = ?`, id.String()).Scan(&workoutExerciseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove set: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM sets WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("remove set: %w", err)
	}

	rows, err := tx.Query(
		`SELECT id FROM sets WHERE workoutExerciseId = ? ORDER BY setIndex ASC`,
		workoutExerciseID)
	if err != nil {
		return fmt.Errorf("renumber sets: %w", err)
	}
	var survivors []string
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			rows.Close()
			return fmt.Errorf("renumber sets: %w", err)
		}
		survivors = append(survivors, sid)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("renumber sets: %w", err)
	}
	rows.Close()

	for i, sid := range survivors {
		if _, err := tx.Exec(`UPDATE sets SET setIndex = ? WHERE id = ?`, i, sid); err != nil {
			return fmt.Errorf("renumber sets: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove set: %w", err)
	}
	return nil
}

// RemoveAllSets deletes every set belonging to a workout-exercise.
func (d *DB) RemoveAllSets(workoutExerciseID uuid.UUID) error {
	if _, err := d.db.Exec(
		`DELETE FROM sets WHERE workoutExerciseId = ?`, workoutExerciseID.String()); err != nil {
		return fmt.Errorf("remove sets: %w", err)
	}
	return nil
}

// roundPtr rounds an optional REAL to one decimal, passing nil through.
func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := models.RoundTenth(*v)
	return &r
}

// scanSet scans a single row into a Set.
func scanSet(row *sql.Row) (*models.Set, error) {
	var s models.Set
	var idStr, workoutExerciseIDStr string
	var weight, rpe sql.NullFloat64
	var reps, restSeconds sql.NullInt64
	var notes sql.NullString

	err := row.Scan(&idStr, &workoutExerciseIDStr, &s.SetIndex,
		&weight, &reps, &rpe, &restSeconds, &notes)
	if err != nil {
		return nil, err
	}

	s.ID, _ = uuid.Parse(idStr)
	s.WorkoutExerciseID, _ = uuid.Parse(workoutExerciseIDStr)
	assignSetNumerics(&s, weight, reps, rpe, restSeconds, notes)

	return &s, nil
}

// scanSetRow scans the current row of a multi-row result set.
func scanSetRow(rows *sql.Rows) (*models.Set, error) {
	var s models.Set
	var idStr, workoutExerciseIDStr string
	var weight, rpe sql.NullFloat64
	var reps, restSeconds sql.NullInt64
	var notes sql.NullString

	err := rows.Scan(&idStr, &workoutExerciseIDStr, &s.SetIndex,
		&weight, &reps, &rpe, &restSeconds, &notes)
	if err != nil {
		return nil, fmt.Errorf("scan set: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.WorkoutExerciseID, _ = uuid.Parse(workoutExerciseIDStr)
	assignSetNumerics(&s, weight, reps, rpe, restSeconds, notes)

	return &s, nil
}

// assignSetNumerics normalizes nullable columns to their semantic types.
func assignSetNumerics(s *models.Set, weight sql.NullFloat64, reps sql.NullInt64, rpe sql.NullFloat64, restSeconds sql.NullInt64, notes sql.NullString) {
	if weight.Valid {
		v := weight.Float64
		s.Weight = &v
	}
	if reps.Valid {
		v := int(reps.Int64)
		s.Reps = &v
	}
	if rpe.Valid {
		v := rpe.Float64
		s.RPE = &v
	}
	if restSeconds.Valid {
		v := int(restSeconds.Int64)
		s.RestSeconds = &v
	}
	s.Notes = nullString(notes)
}
