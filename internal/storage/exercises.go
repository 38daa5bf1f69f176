// ABOUTME: Exercise repository CRUD operations for SQLite storage.
// ABOUTME: Lists are ordered by name case-insensitively; search is substring OR.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittracker/internal/models"
)

const exerciseColumns = `id, name, category, equipment, muscleGroup, isCustom, createdAt`

// ListExercises returns the full catalog ordered by name, case-insensitively.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	rows, err := d.db.Query(
		`SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// SearchExercises matches the query as a case-insensitive substring against
// name, category, and muscle group. A blank query lists the full catalog.
func (d *DB) SearchExercises(query string) ([]*models.Exercise, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return d.ListExercises()
	}

	like := "%" + trimmed + "%"
	rows, err := d.db.Query(
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE name LIKE ? OR muscleGroup LIKE ? OR category LIKE ?
		 ORDER BY name COLLATE NOCASE`,
		like, like, like)
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetExercise retrieves an exercise by ID. Returns ErrNotFound if absent.
func (d *DB) GetExercise(id uuid.UUID) (*models.Exercise, error) {
	row := d.db.QueryRow(
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id.String())
	ex, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return ex, nil
}

// CreateExercise validates and stores a new exercise, then re-reads it so
// storage-side defaults (createdAt) are reflected in the returned record.
// IsCustom defaults to true unless the caller overrides it.
func (d *DB) CreateExercise(input models.CreateExerciseInput) (*models.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}
	isCustom := true
	if input.IsCustom != nil {
		isCustom = *input.IsCustom
	}

	_, err := d.db.Exec(
		`INSERT INTO exercises (id, name, category, equipment, muscleGroup, isCustom)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), name,
		trimPtr(input.Category), trimPtr(input.Equipment), trimPtr(input.MuscleGroup),
		boolToInt(isCustom))
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	return d.GetExercise(id)
}

// UpdateExercise merges the patch onto the current record and writes every
// mutable column back. Returns ErrNotFound if the ID does not exist.
func (d *DB) UpdateExercise(id uuid.UUID, patch models.UpdateExerciseInput) (*models.Exercise, error) {
	current, err := d.GetExercise(id)
	if err != nil {
		return nil, err
	}

	next := *current
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
		}
		next.Name = name
	}
	if patch.Category != nil {
		next.Category = patch.Category
	}
	if patch.Equipment != nil {
		next.Equipment = patch.Equipment
	}
	if patch.MuscleGroup != nil {
		next.MuscleGroup = patch.MuscleGroup
	}
	if patch.IsCustom != nil {
		next.IsCustom = *patch.IsCustom
	}

	_, err = d.db.Exec(
		`UPDATE exercises
		 SET name = ?, category = ?, equipment = ?, muscleGroup = ?, isCustom = ?
		 WHERE id = ?`,
		next.Name, next.Category, next.Equipment, next.MuscleGroup,
		boolToInt(next.IsCustom), id.String())
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}

	return d.GetExercise(id)
}

// DeleteExercise removes an exercise by ID. Idempotent: deleting a missing
// ID is not an error.
func (d *DB) DeleteExercise(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM exercises WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// scanExercise scans a single row into an Exercise.
func scanExercise(row *sql.Row) (*models.Exercise, error) {
	var ex models.Exercise
	var idStr string
	var category, equipment, muscleGroup sql.NullString
	var isCustom int64
	var createdAt int64

	err := row.Scan(&idStr, &ex.Name, &category, &equipment, &muscleGroup, &isCustom, &createdAt)
	if err != nil {
		return nil, err
	}

	ex.ID, _ = uuid.Parse(idStr)
	ex.Category = nullString(category)
	ex.Equipment = nullString(equipment)
	ex.MuscleGroup = nullString(muscleGroup)
	ex.IsCustom = isCustom == 1
	ex.CreatedAt = time.Unix(createdAt, 0)

	return &ex, nil
}

// scanExercises scans multiple rows into a slice of Exercises.
func scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var exercises []*models.Exercise

	for rows.Next() {
		var ex models.Exercise
		var idStr string
		var category, equipment, muscleGroup sql.NullString
		var isCustom int64
		var createdAt int64

		err := rows.Scan(&idStr, &ex.Name, &category, &equipment, &muscleGroup, &isCustom, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		ex.ID, _ = uuid.Parse(idStr)
		ex.Category = nullString(category)
		ex.Equipment = nullString(equipment)
		ex.MuscleGroup = nullString(muscleGroup)
		ex.IsCustom = isCustom == 1
		ex.CreatedAt = time.Unix(createdAt, 0)

		exercises = append(exercises, &ex)
	}

	return exercises, rows.Err()
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
