// ABOUTME: SessionDraft value type for the in-progress workout.
// ABOUTME: Mutators return new snapshots; drafts are never shared mutably.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftSet is one not-yet-committed set inside the session draft.
type DraftSet struct {
	ID          uuid.UUID `json:"id"`
	ExerciseID  uuid.UUID `json:"exerciseId"`
	SetIndex    int       `json:"setIndex"`
	Weight      *float64  `json:"weight,omitempty"`
	Reps        *int      `json:"reps,omitempty"`
	RPE         *float64  `json:"rpe,omitempty"`
	RestSeconds *int      `json:"restSeconds,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

// DraftSetPayload carries the user-editable fields of a draft set.
type DraftSetPayload struct {
	Weight      *float64
	Reps        *int
	RPE         *float64
	RestSeconds *int
	Notes       *string
}

// DraftExercise holds the ordered sets recorded for one exercise.
// Exercises are kept in a slice so insertion order survives round trips
// through the cache.
type DraftExercise struct {
	ExerciseID uuid.UUID  `json:"exerciseId"`
	Sets       []DraftSet `json:"sets"`
}

// SessionDraft is the workout currently being recorded, before commit.
// The zero value is the Idle state. Every mutator returns a new snapshot
// and leaves the receiver untouched.
type SessionDraft struct {
	WorkoutID        *uuid.UUID      `json:"workoutId,omitempty"`
	StartedAt        *time.Time      `json:"startedAt,omitempty"`
	ActiveExerciseID *uuid.UUID      `json:"activeExerciseId,omitempty"`
	RestTimerEndsAt  *time.Time      `json:"restTimerEndsAt,omitempty"`
	Exercises        []DraftExercise `json:"exercises"`
}

// Active reports whether a session is in progress.
func (d SessionDraft) Active() bool {
	return d.StartedAt != nil
}

// SetsFor returns the recorded sets for an exercise, or nil if the
// exercise is not part of the draft.
func (d SessionDraft) SetsFor(exerciseID uuid.UUID) []DraftSet {
	for _, ex := range d.Exercises {
		if ex.ExerciseID == exerciseID {
			return ex.Sets
		}
	}
	return nil
}

// HasExercise reports whether the exercise has been added to the draft.
func (d SessionDraft) HasExercise(exerciseID uuid.UUID) bool {
	for _, ex := range d.Exercises {
		if ex.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

// TotalSets counts sets across all exercises in the draft.
func (d SessionDraft) TotalSets() int {
	n := 0
	for _, ex := range d.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// RestTimerRemaining returns whole seconds left on the rest timer,
// rounded up, or 0 when no timer is running.
func (d SessionDraft) RestTimerRemaining(now time.Time) int {
	if d.RestTimerEndsAt == nil {
		return 0
	}
	remaining := d.RestTimerEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// StartWorkout begins a fresh session, discarding any prior draft state.
// A nil workoutID assigns a freshly generated one.
func (d SessionDraft) StartWorkout(workoutID *uuid.UUID, now time.Time) SessionDraft {
	id := uuid.New()
	if workoutID != nil {
		id = *workoutID
	}
	started := now
	return SessionDraft{
		WorkoutID: &id,
		StartedAt: &started,
	}
}

// AddExercise appends an exercise with an empty set list, preserving
// insertion order. No-op if the exercise is already present.
func (d SessionDraft) AddExercise(exerciseID uuid.UUID) SessionDraft {
	if d.HasExercise(exerciseID) {
		return d.clone()
	}
	next := d.clone()
	next.Exercises = append(next.Exercises, DraftExercise{ExerciseID: exerciseID})
	return next
}

// AddSet appends a set for the exercise, adding the exercise first if
// needed. SetIndex is the current length of the exercise's set list.
func (d SessionDraft) AddSet(exerciseID uuid.UUID, payload DraftSetPayload) (SessionDraft, DraftSet) {
	next := d.AddExercise(exerciseID)
	for i, ex := range next.Exercises {
		if ex.ExerciseID != exerciseID {
			continue
		}
		set := DraftSet{
			ID:          uuid.New(),
			ExerciseID:  exerciseID,
			SetIndex:    len(ex.Sets),
			Weight:      payload.Weight,
			Reps:        payload.Reps,
			RPE:         payload.RPE,
			RestSeconds: payload.RestSeconds,
			Notes:       payload.Notes,
		}
		next.Exercises[i].Sets = append(next.Exercises[i].Sets, set)
		return next, set
	}
	return next, DraftSet{} // unreachable: AddExercise guarantees presence
}

// UpdateSet merges the payload onto the matching set. Nil payload fields
// are left unchanged. No-op if the exercise or set is not found.
func (d SessionDraft) UpdateSet(exerciseID, setID uuid.UUID, patch DraftSetPayload) SessionDraft {
	next := d.clone()
	for i, ex := range next.Exercises {
		if ex.ExerciseID != exerciseID {
			continue
		}
		for j, set := range ex.Sets {
			if set.ID != setID {
				continue
			}
			if patch.Weight != nil {
				set.Weight = patch.Weight
			}
			if patch.Reps != nil {
				set.Reps = patch.Reps
			}
			if patch.RPE != nil {
				set.RPE = patch.RPE
			}
			if patch.RestSeconds != nil {
				set.RestSeconds = patch.RestSeconds
			}
			if patch.Notes != nil {
				set.Notes = patch.Notes
			}
			next.Exercises[i].Sets[j] = set
			return next
		}
	}
	return next
}

// RemoveSet drops the matching set and renumbers the exercise's remaining
// sets to a contiguous zero-based sequence, preserving relative order.
func (d SessionDraft) RemoveSet(exerciseID, setID uuid.UUID) SessionDraft {
	next := d.clone()
	for i, ex := range next.Exercises {
		if ex.ExerciseID != exerciseID {
			continue
		}
		kept := make([]DraftSet, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			if set.ID == setID {
				continue
			}
			set.SetIndex = len(kept)
			kept = append(kept, set)
		}
		next.Exercises[i].Sets = kept
		return next
	}
	return next
}

// ClearExercise drops an exercise and all its sets from the draft.
func (d SessionDraft) ClearExercise(exerciseID uuid.UUID) SessionDraft {
	next := d.clone()
	kept := make([]DraftExercise, 0, len(next.Exercises))
	for _, ex := range next.Exercises {
		if ex.ExerciseID == exerciseID {
			continue
		}
		kept = append(kept, ex)
	}
	next.Exercises = kept
	if next.ActiveExerciseID != nil && *next.ActiveExerciseID == exerciseID {
		next.ActiveExerciseID = nil
	}
	return next
}

// SetActiveExercise records which exercise the session is focused on.
func (d SessionDraft) SetActiveExercise(exerciseID *uuid.UUID) SessionDraft {
	next := d.clone()
	next.ActiveExerciseID = exerciseID
	return next
}

// StartRestTimer arms the rest timer for the given number of seconds.
func (d SessionDraft) StartRestTimer(seconds int, now time.Time) SessionDraft {
	next := d.clone()
	endsAt := now.Add(time.Duration(seconds) * time.Second)
	next.RestTimerEndsAt = &endsAt
	return next
}

// ClearRestTimer disarms the rest timer.
func (d SessionDraft) ClearRestTimer() SessionDraft {
	next := d.clone()
	next.RestTimerEndsAt = nil
	return next
}

// clone deep-copies the draft so snapshot mutations never alias the
// receiver's slices.
func (d SessionDraft) clone() SessionDraft {
	next := d
	if d.Exercises != nil {
		next.Exercises = make([]DraftExercise, len(d.Exercises))
		for i, ex := range d.Exercises {
			next.Exercises[i] = ex
			if ex.Sets != nil {
				next.Exercises[i].Sets = make([]DraftSet, len(ex.Sets))
				copy(next.Exercises[i].Sets, ex.Sets)
			}
		}
	}
	return next
}
