// ABOUTME: MCP tool implementations for the fitness tracker.
// ABOUTME: Exposes the exercise catalog, live session, and workout history.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittracker/internal/models"
	"github.com/harperreed/fittracker/internal/storage"
)

func (s *Server) registerTools() {
	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog alphabetically",
	}, s.handleListExercises)

	// search_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Search exercises by name, muscle group, or category",
	}, s.handleSearchExercises)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleAddExercise)

	// start_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a new workout session, discarding any unfinished one",
	}, s.handleStartWorkout)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log a set for an exercise in the current session",
	}, s.handleLogSet)

	// update_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Update a logged set in the current session",
	}, s.handleUpdateSet)

	// remove_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_set",
		Description: "Remove a logged set from the current session",
	}, s.handleRemoveSet)

	// start_rest_timer
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_rest_timer",
		Description: "Start a rest countdown in the current session",
	}, s.handleStartRestTimer)

	// finish_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Save the current session as a completed workout",
	}, s.handleFinishWorkout)

	// discard_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "discard_workout",
		Description: "Discard the current session without saving",
	}, s.handleDiscardWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent completed workouts",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises and sets",
	}, s.handleGetWorkout)
}

// Tool input/output types

type searchExercisesInput struct {
	Query string `json:"query" jsonschema:"Substring matched against name, muscle group, and category"`
}

type addExerciseInput struct {
	Name        string `json:"name" jsonschema:"Exercise name"`
	Category    string `json:"category,omitempty" jsonschema:"Category (Push, Pull, Legs, Core, ...)"`
	Equipment   string `json:"equipment,omitempty" jsonschema:"Equipment used"`
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Primary muscle group"`
}

type exerciseOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	IsCustom    bool   `json:"is_custom"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type logSetInput struct {
	ExerciseID   string   `json:"exercise_id,omitempty" jsonschema:"Exercise ID; may be omitted when exercise_name is given"`
	ExerciseName string   `json:"exercise_name,omitempty" jsonschema:"Exercise name to resolve against the catalog"`
	Weight       *float64 `json:"weight,omitempty" jsonschema:"Weight used"`
	Reps         *int     `json:"reps,omitempty" jsonschema:"Repetitions performed"`
	RPE          *float64 `json:"rpe,omitempty" jsonschema:"Rating of perceived exertion (1-10)"`
	RestSeconds  *int     `json:"rest_seconds,omitempty" jsonschema:"Rest taken after the set in seconds"`
	Notes        *string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type setOutput struct {
	ID         string `json:"id"`
	ExerciseID string `json:"exercise_id"`
	SetIndex   int    `json:"set_index"`
	Message    string `json:"message"`
}

type updateSetInput struct {
	ExerciseID  string   `json:"exercise_id" jsonschema:"Exercise the set belongs to"`
	SetID       string   `json:"set_id" jsonschema:"Set ID"`
	Weight      *float64 `json:"weight,omitempty" jsonschema:"New weight"`
	Reps        *int     `json:"reps,omitempty" jsonschema:"New rep count"`
	RPE         *float64 `json:"rpe,omitempty" jsonschema:"New RPE"`
	RestSeconds *int     `json:"rest_seconds,omitempty" jsonschema:"New rest length in seconds"`
	Notes       *string  `json:"notes,omitempty" jsonschema:"New notes"`
}

type removeSetInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise the set belongs to"`
	SetID      string `json:"set_id" jsonschema:"Set ID"`
}

type startRestTimerInput struct {
	Seconds int `json:"seconds" jsonschema:"Countdown length in seconds"`
}

type finishWorkoutInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Workout type (default strength)"`
	Notes string `json:"notes,omitempty" jsonschema:"Workout notes"`
}

type finishWorkoutOutput struct {
	WorkoutID string `json:"workout_id"`
	EndedAt   string `json:"ended_at"`
	Message   string `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID"`
}

type workoutOutput struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type,omitempty"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type workoutSetOutput struct {
	ID          string   `json:"id"`
	SetIndex    int      `json:"set_index"`
	Weight      *float64 `json:"weight,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
	RestSeconds *int     `json:"rest_seconds,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type workoutExerciseOutput struct {
	ExerciseID string             `json:"exercise_id"`
	Name       string             `json:"name"`
	OrderIndex int                `json:"order_index"`
	Sets       []workoutSetOutput `json:"sets"`
}

type workoutDetailOutput struct {
	Workout   workoutOutput           `json:"workout"`
	Exercises []workoutExerciseOutput `json:"exercises"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	exercises, err := s.db.ListExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return nil, toExerciseOutputs(exercises), nil
}

func (s *Server) handleSearchExercises(ctx context.Context, req *mcp.CallToolRequest, input searchExercisesInput) (*mcp.CallToolResult, any, error) {
	exercises, err := s.db.SearchExercises(input.Query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}
	return nil, toExerciseOutputs(exercises), nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	create := models.CreateExerciseInput{Name: input.Name}
	if input.Category != "" {
		create.Category = &input.Category
	}
	if input.Equipment != "" {
		create.Equipment = &input.Equipment
	}
	if input.MuscleGroup != "" {
		create.MuscleGroup = &input.MuscleGroup
	}

	ex, err := s.db.CreateExercise(create)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}
	return nil, toExerciseOutput(ex), nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.sessions.StartWorkout(nil); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}
	return nil, simpleOutput{Message: "Workout session started."}, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, setOutput, error) {
	if !s.sessions.Active() {
		return nil, setOutput{}, storage.ErrNoActiveSession
	}

	ex, err := s.resolveExercise(input.ExerciseID, input.ExerciseName)
	if err != nil {
		return nil, setOutput{}, err
	}

	set, err := s.sessions.AddSet(ex.ID, models.DraftSetPayload{
		Weight:      input.Weight,
		Reps:        input.Reps,
		RPE:         input.RPE,
		RestSeconds: input.RestSeconds,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, setOutput{}, fmt.Errorf("failed to log set: %w", err)
	}

	return nil, setOutput{
		ID:         set.ID.String(),
		ExerciseID: ex.ID.String(),
		SetIndex:   set.SetIndex,
		Message:    fmt.Sprintf("Logged set %d of %s", set.SetIndex+1, ex.Name),
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	exerciseID, err := uuid.Parse(input.ExerciseID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid exercise ID: %s", input.ExerciseID)
	}
	setID, err := uuid.Parse(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid set ID: %s", input.SetID)
	}

	if _, err := s.sessions.UpdateSet(exerciseID, setID, models.DraftSetPayload{
		Weight:      input.Weight,
		Reps:        input.Reps,
		RPE:         input.RPE,
		RestSeconds: input.RestSeconds,
		Notes:       input.Notes,
	}); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated set %s", input.SetID)}, nil
}

func (s *Server) handleRemoveSet(ctx context.Context, req *mcp.CallToolRequest, input removeSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	exerciseID, err := uuid.Parse(input.ExerciseID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid exercise ID: %s", input.ExerciseID)
	}
	setID, err := uuid.Parse(input.SetID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid set ID: %s", input.SetID)
	}

	if _, err := s.sessions.RemoveSet(exerciseID, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set %s", input.SetID)}, nil
}

func (s *Server) handleStartRestTimer(ctx context.Context, req *mcp.CallToolRequest, input startRestTimerInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !s.sessions.Active() {
		return nil, simpleOutput{}, storage.ErrNoActiveSession
	}
	if input.Seconds <= 0 {
		return nil, simpleOutput{}, fmt.Errorf("%w: rest length must be positive", storage.ErrValidation)
	}

	if _, err := s.sessions.StartRestTimer(input.Seconds); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to start rest timer: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Resting for %d seconds", input.Seconds)}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, finishWorkoutOutput, error) {
	opts := storage.CommitOptions{UserID: s.userID, Type: input.Type}
	if input.Notes != "" {
		opts.Notes = &input.Notes
	}

	result, err := s.db.SaveWorkoutFromDraft(s.sessions.Current(), opts)
	if err != nil {
		return nil, finishWorkoutOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}
	if err := s.sessions.Clear(); err != nil {
		return nil, finishWorkoutOutput{}, fmt.Errorf("failed to clear session: %w", err)
	}

	return nil, finishWorkoutOutput{
		WorkoutID: result.WorkoutID.String(),
		EndedAt:   result.EndedAt.Format("2006-01-02 15:04:05"),
		Message:   fmt.Sprintf("Saved workout %s", result.WorkoutID),
	}, nil
}

func (s *Server) handleDiscardWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.sessions.Clear(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to discard session: %w", err)
	}
	return nil, simpleOutput{Message: "Session discarded."}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.db.ListRecentWorkouts(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}

	out := make([]workoutOutput, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, toWorkoutOutput(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid workout ID: %s", input.ID)
	}

	w, err := s.db.GetWorkout(id)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}

	wes, err := s.db.ListWorkoutExercises(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workout exercises: %w", err)
	}

	detail := workoutDetailOutput{Workout: toWorkoutOutput(w)}
	for _, we := range wes {
		exOut := workoutExerciseOutput{
			ExerciseID: we.ExerciseID.String(),
			OrderIndex: we.OrderIndex,
			Sets:       []workoutSetOutput{},
		}
		if ex, err := s.db.GetExercise(we.ExerciseID); err == nil {
			exOut.Name = ex.Name
		}

		sets, err := s.db.ListSets(we.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list sets: %w", err)
		}
		for _, set := range sets {
			so := workoutSetOutput{
				ID:          set.ID.String(),
				SetIndex:    set.SetIndex,
				Weight:      set.Weight,
				Reps:        set.Reps,
				RPE:         set.RPE,
				RestSeconds: set.RestSeconds,
			}
			if set.Notes != nil {
				so.Notes = *set.Notes
			}
			exOut.Sets = append(exOut.Sets, so)
		}
		detail.Exercises = append(detail.Exercises, exOut)
	}

	return nil, detail, nil
}

// resolveExercise finds an exercise by ID, or by exact catalog name
// when only a name is given.
func (s *Server) resolveExercise(id, name string) (*models.Exercise, error) {
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid exercise ID: %s", id)
		}
		return s.db.GetExercise(parsed)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: exercise_id or exercise_name is required", storage.ErrValidation)
	}

	matches, err := s.db.SearchExercises(name)
	if err != nil {
		return nil, fmt.Errorf("failed to search exercises: %w", err)
	}
	for _, ex := range matches {
		if ex.Name == name {
			return ex, nil
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return nil, fmt.Errorf("no unique exercise matches %q", name)
}

func toExerciseOutput(ex *models.Exercise) exerciseOutput {
	out := exerciseOutput{
		ID:       ex.ID.String(),
		Name:     ex.Name,
		IsCustom: ex.IsCustom,
	}
	if ex.Category != nil {
		out.Category = *ex.Category
	}
	if ex.Equipment != nil {
		out.Equipment = *ex.Equipment
	}
	if ex.MuscleGroup != nil {
		out.MuscleGroup = *ex.MuscleGroup
	}
	return out
}

func toExerciseOutputs(exercises []*models.Exercise) []exerciseOutput {
	out := make([]exerciseOutput, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, toExerciseOutput(ex))
	}
	return out
}

func toWorkoutOutput(w *models.Workout) workoutOutput {
	out := workoutOutput{
		ID:        w.ID.String(),
		UserID:    w.UserID,
		StartedAt: w.StartedAt.Format("2006-01-02 15:04:05"),
	}
	if w.Type != nil {
		out.Type = *w.Type
	}
	if w.EndedAt != nil {
		out.EndedAt = w.EndedAt.Format("2006-01-02 15:04:05")
	}
	if w.Notes != nil {
		out.Notes = *w.Notes
	}
	return out
}
