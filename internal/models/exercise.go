// ABOUTME: Exercise catalog model for the workout tracker.
// ABOUTME: Exercises come from the seed catalog or are user-created.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is one entry in the exercise catalog. Identity is immutable;
// descriptive fields may change after creation.
type Exercise struct {
	ID          uuid.UUID
	Name        string
	Category    *string
	Equipment   *string
	MuscleGroup *string
	IsCustom    bool
	CreatedAt   time.Time
}

// CreateExerciseInput holds the fields accepted when creating an exercise.
// ID is optional; a fresh UUID is generated when absent. IsCustom defaults
// to true for caller-created exercises (seeds override it to false).
type CreateExerciseInput struct {
	ID          *uuid.UUID
	Name        string
	Category    *string
	Equipment   *string
	MuscleGroup *string
	IsCustom    *bool
}

// UpdateExerciseInput is a partial patch; nil fields are left unchanged.
type UpdateExerciseInput struct {
	Name        *string
	Category    *string
	Equipment   *string
	MuscleGroup *string
	IsCustom    *bool
}
