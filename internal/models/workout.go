// ABOUTME: Workout, WorkoutExercise, and Set models for session tracking.
// ABOUTME: A workout owns ordered workout-exercises, which own ordered sets.
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Workout is one recorded training session. EndedAt is nil while the
// workout is open and is set exactly once on completion.
type Workout struct {
	ID        uuid.UUID
	UserID    string
	Type      *string
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     *string
}

// Open reports whether the workout has not been completed yet.
func (w *Workout) Open() bool {
	return w.EndedAt == nil
}

// CreateWorkoutInput holds the fields accepted when creating a workout.
// StartedAt defaults to the current time when nil.
type CreateWorkoutInput struct {
	UserID    string
	Type      *string
	StartedAt *time.Time
	Notes     *string
}

// CompleteWorkoutInput finalizes a workout. EndedAt defaults to now.
// Notes, when non-nil, overwrites the stored notes; nil preserves them.
type CompleteWorkoutInput struct {
	WorkoutID uuid.UUID
	EndedAt   *time.Time
	Notes     *string
}

// WorkoutExercise is one exercise's appearance within a workout.
// OrderIndex is dense and zero-based per workout.
type WorkoutExercise struct {
	ID         uuid.UUID
	WorkoutID  uuid.UUID
	ExerciseID uuid.UUID
	OrderIndex int
}

// Set is a single performed set. SetIndex is dense and zero-based per
// workout-exercise. Numeric fields are optional.
type Set struct {
	ID                uuid.UUID
	WorkoutExerciseID uuid.UUID
	SetIndex          int
	Weight            *float64
	Reps              *int
	RPE               *float64
	RestSeconds       *int
	Notes             *string
}

// CreateSetInput holds the fields accepted when creating a set.
// SetIndex defaults to one past the current maximum for the
// workout-exercise when nil.
type CreateSetInput struct {
	WorkoutExerciseID uuid.UUID
	SetIndex          *int
	Weight            *float64
	Reps              *int
	RPE               *float64
	RestSeconds       *int
	Notes             *string
}

// UpdateSetInput is a partial patch; nil fields are left unchanged.
type UpdateSetInput struct {
	SetIndex    *int
	Weight      *float64
	Reps        *int
	RPE         *float64
	RestSeconds *int
	Notes       *string
}

// RoundTenth rounds to one decimal place. Weight and RPE values are
// normalized with it before storage.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
