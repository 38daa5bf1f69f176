// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fittracker://session and fittracker://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fittracker://session - the live workout session
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittracker://session",
		Name:        "Current Workout Session",
		Description: "The in-progress workout session draft, if any",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	// fittracker://recent - recent completed workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittracker://recent",
		Name:        "Recent Workouts",
		Description: "The last 10 completed workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleSessionResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	draft := s.sessions.Current()

	result := map[string]any{
		"active": draft.Active(),
	}
	if draft.Active() {
		exercises := make([]map[string]any, 0, len(draft.Exercises))
		for _, ex := range draft.Exercises {
			name := ex.ExerciseID.String()
			if e, err := s.db.GetExercise(ex.ExerciseID); err == nil {
				name = e.Name
			}
			exercises = append(exercises, map[string]any{
				"exercise_id": ex.ExerciseID.String(),
				"name":        name,
				"sets":        ex.Sets,
			})
		}

		result["started_at"] = draft.StartedAt.Format(time.RFC3339)
		result["total_sets"] = draft.TotalSets()
		result["exercises"] = exercises
		if draft.ActiveExerciseID != nil {
			result["active_exercise_id"] = draft.ActiveExerciseID.String()
		}
		if remaining := draft.RestTimerRemaining(time.Now()); remaining > 0 {
			result["rest_seconds_remaining"] = remaining
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittracker://session",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.db.ListRecentWorkouts(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	out := make([]workoutOutput, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, toWorkoutOutput(w))
	}

	result := map[string]any{
		"workouts": out,
		"count":    len(out),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittracker://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
