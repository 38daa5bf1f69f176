// ABOUTME: In-memory session store fronting the persisted draft cache.
// ABOUTME: Every mutation produces a fresh snapshot and writes it through.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/fittracker/internal/draftcache"
	"github.com/harperreed/fittracker/internal/models"
)

// Store holds the current session draft and writes each new snapshot
// through to the cache. The in-memory copy is authoritative; a failed
// cache write is logged and surfaced but does not roll the draft back.
// Safe for concurrent use. A nil cache keeps the store memory-only.
type Store struct {
	mu    sync.RWMutex
	cache *draftcache.Cache
	draft models.SessionDraft
}

// NewStore creates a store hydrated from any draft the cache holds.
func NewStore(cache *draftcache.Cache) (*Store, error) {
	s := &Store{cache: cache}
	if cache == nil {
		return s, nil
	}

	draft, found, err := cache.LoadDraft()
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug("restored session draft", "active", draft.Active(), "sets", draft.TotalSets())
		s.draft = draft
	}
	return s, nil
}

// Current returns a snapshot of the draft. Callers may hold it freely;
// later mutations never alias it.
func (s *Store) Current() models.SessionDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Active reports whether a session is in progress.
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Active()
}

// apply installs the next snapshot and persists it.
func (s *Store) apply(next models.SessionDraft) error {
	s.draft = next
	if s.cache == nil {
		return nil
	}
	if err := s.cache.SaveDraft(next); err != nil {
		log.Warn("failed to persist session draft", "error", err)
		return err
	}
	return nil
}

// StartWorkout begins a fresh session, discarding any previous draft.
// Passing a workout ID ties the session to an existing workout row.
func (s *Store) StartWorkout(workoutID *uuid.UUID) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.StartWorkout(workoutID, time.Now())
	return next, s.apply(next)
}

// AddExercise attaches an exercise to the session. Re-adding an
// exercise already present is a no-op.
func (s *Store) AddExercise(exerciseID uuid.UUID) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.AddExercise(exerciseID)
	return next, s.apply(next)
}

// AddSet logs a set for an exercise, attaching the exercise first if
// needed, and returns the created set.
func (s *Store) AddSet(exerciseID uuid.UUID, payload models.DraftSetPayload) (models.DraftSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, set := s.draft.AddSet(exerciseID, payload)
	return set, s.apply(next)
}

// UpdateSet merges a patch into an existing set. Unknown IDs are
// ignored.
func (s *Store) UpdateSet(exerciseID, setID uuid.UUID, patch models.DraftSetPayload) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.UpdateSet(exerciseID, setID, patch)
	return next, s.apply(next)
}

// RemoveSet deletes a set and renumbers the exercise's remaining sets.
func (s *Store) RemoveSet(exerciseID, setID uuid.UUID) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.RemoveSet(exerciseID, setID)
	return next, s.apply(next)
}

// ClearExercise drops an exercise and all its sets from the session.
func (s *Store) ClearExercise(exerciseID uuid.UUID) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.ClearExercise(exerciseID)
	return next, s.apply(next)
}

// SetActiveExercise records which exercise the user is focused on.
func (s *Store) SetActiveExercise(exerciseID *uuid.UUID) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.SetActiveExercise(exerciseID)
	return next, s.apply(next)
}

// StartRestTimer starts a countdown of the given length.
func (s *Store) StartRestTimer(seconds int) (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.StartRestTimer(seconds, time.Now())
	return next, s.apply(next)
}

// ClearRestTimer cancels any running countdown.
func (s *Store) ClearRestTimer() (models.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.ClearRestTimer()
	return next, s.apply(next)
}

// Clear resets the session to idle and removes the cached draft.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = models.SessionDraft{}
	if s.cache == nil {
		return nil
	}
	return s.cache.ClearDraft()
}
