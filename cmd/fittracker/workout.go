// ABOUTME: CLI commands for workout sessions and history.
// ABOUTME: Supports start, log, status, finish, discard, recent, and show.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittracker/internal/models"
	"github.com/harperreed/fittracker/internal/storage"
)

var (
	logWeight   float64
	logReps     int
	logRPE      float64
	logRest     int
	logNotes    string
	finishType  string
	finishNotes string
	recentLimit int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Track workout sessions",
	Long: `Track workout sessions.

A session is a live draft: start one, log sets as you train, and finish
to save the whole workout in a single transaction. Until then the draft
is cached on disk, so an interrupted session picks up where it left off.

WORKFLOW:

  1. Start a session:   fittracker workout start
  2. Log sets:          fittracker workout log "Back Squat" -w 100 -r 5
  3. Check progress:    fittracker workout status
  4. Save it:           fittracker workout finish

COMMANDS:

  start     Start a new session (discards any unfinished one)
  log       Log a set for an exercise
  rest      Start a rest countdown
  status    Show the current session
  finish    Save the session as a completed workout
  discard   Throw the session away
  recent    List recent workouts
  show      View a workout with its exercises and sets`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessions.Active() {
			color.Yellow("⚠ Discarding unfinished session")
		}
		if _, err := sessions.StartWorkout(nil); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		color.Green("✓ Workout started")
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <exercise>",
	Short: "Log a set",
	Long: `Log a set for an exercise in the current session.

The exercise is matched by name against the catalog. The first set of an
exercise attaches it to the session; later sets append in order.

Examples:
  fittracker workout log "Back Squat" --weight 100 --reps 5
  fittracker workout log Deadlift -w 140 -r 3 --rpe 8.5
  fittracker workout log Pull-Up -r 10 --notes "strict"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessions.Active() {
			return storage.ErrNoActiveSession
		}

		ex, err := resolveExerciseByName(args[0])
		if err != nil {
			return err
		}

		payload := models.DraftSetPayload{}
		if cmd.Flags().Changed("weight") {
			payload.Weight = &logWeight
		}
		if cmd.Flags().Changed("reps") {
			payload.Reps = &logReps
		}
		if cmd.Flags().Changed("rpe") {
			payload.RPE = &logRPE
		}
		if cmd.Flags().Changed("rest") {
			payload.RestSeconds = &logRest
		}
		if logNotes != "" {
			payload.Notes = &logNotes
		}

		set, err := sessions.AddSet(ex.ID, payload)
		if err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		color.Green("✓ %s set %d", ex.Name, set.SetIndex+1)
		return nil
	},
}

var workoutRestCmd = &cobra.Command{
	Use:   "rest <seconds>",
	Short: "Start a rest countdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessions.Active() {
			return storage.ErrNoActiveSession
		}
		var seconds int
		if _, err := fmt.Sscanf(args[0], "%d", &seconds); err != nil || seconds <= 0 {
			return fmt.Errorf("%w: rest length must be a positive number of seconds", storage.ErrValidation)
		}
		if _, err := sessions.StartRestTimer(seconds); err != nil {
			return fmt.Errorf("failed to start rest timer: %w", err)
		}
		color.Green("✓ Resting for %ds", seconds)
		return nil
	},
}

var workoutStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := sessions.Current()
		if !draft.Active() {
			fmt.Println("No active session.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Printf("Session started %s\n", faint.Sprint(draft.StartedAt.Format("2006-01-02 15:04")))
		if remaining := draft.RestTimerRemaining(time.Now()); remaining > 0 {
			color.Yellow("Resting: %ds remaining", remaining)
		}

		for _, de := range draft.Exercises {
			name := de.ExerciseID.String()[:8]
			if ex, err := store.GetExercise(de.ExerciseID); err == nil {
				name = ex.Name
			}
			fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(name))
			for _, set := range de.Sets {
				fmt.Printf("  %d. %s\n", set.SetIndex+1, formatDraftSet(set))
			}
		}
		fmt.Printf("\n%d sets total\n", draft.TotalSets())
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Save the session as a completed workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := storage.CommitOptions{UserID: cfg.GetUserID(), Type: finishType}
		if finishNotes != "" {
			opts.Notes = &finishNotes
		}

		result, err := store.SaveWorkoutFromDraft(sessions.Current(), opts)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}
		if err := sessions.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		color.Green("✓ Workout saved")
		fmt.Printf("  ID: %s\n", result.WorkoutID)
		return nil
	},
}

var workoutDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessions.Clear(); err != nil {
			return fmt.Errorf("failed to discard session: %w", err)
		}
		color.Green("✓ Session discarded")
		return nil
	},
}

var workoutRecentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"list", "ls"},
	Short:   "List recent workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := store.ListRecentWorkouts(recentLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			wType := ""
			if w.Type != nil {
				wType = *w.Type
			}
			state := "open"
			if w.EndedAt != nil {
				state = w.EndedAt.Sub(w.StartedAt).Round(time.Minute).String()
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(w.ID.String()[:8]),
				faint.Sprint(w.StartedAt.Format("2006-01-02 15:04")),
				padRight(wType, 12),
				state)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "View workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout ID: %s", args[0])
		}

		w, err := store.GetWorkout(id)
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Workout"), faint.Sprint(w.ID))
		fmt.Printf("  Started: %s\n", w.StartedAt.Format("2006-01-02 15:04"))
		if w.EndedAt != nil {
			fmt.Printf("  Ended:   %s\n", w.EndedAt.Format("2006-01-02 15:04"))
		}
		if w.Type != nil {
			fmt.Printf("  Type:    %s\n", *w.Type)
		}
		if w.Notes != nil {
			fmt.Printf("  Notes:   %s\n", truncate(*w.Notes, 60))
		}

		wes, err := store.ListWorkoutExercises(id)
		if err != nil {
			return fmt.Errorf("failed to list workout exercises: %w", err)
		}
		for _, we := range wes {
			name := we.ExerciseID.String()[:8]
			if ex, err := store.GetExercise(we.ExerciseID); err == nil {
				name = ex.Name
			}
			fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(name))

			sets, err := store.ListSets(we.ID)
			if err != nil {
				return fmt.Errorf("failed to list sets: %w", err)
			}
			for _, set := range sets {
				fmt.Printf("  %d. %s\n", set.SetIndex+1, formatSet(set))
			}
		}
		return nil
	},
}

// resolveExerciseByName finds an exercise by exact name, falling back
// to a unique search match.
func resolveExerciseByName(name string) (*models.Exercise, error) {
	matches, err := store.SearchExercises(name)
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
	if len(matches) == 0 {
		return nil, fmt.Errorf("no exercise matches %q (try 'fittracker exercise add')", name)
	}
	return nil, fmt.Errorf("%d exercises match %q, be more specific", len(matches), name)
}

func formatDraftSet(set models.DraftSet) string {
	return formatSetFields(set.Weight, set.Reps, set.RPE, set.Notes)
}

func formatSet(set *models.Set) string {
	return formatSetFields(set.Weight, set.Reps, set.RPE, set.Notes)
}

func formatSetFields(weight *float64, reps *int, rpe *float64, notes *string) string {
	out := ""
	if weight != nil {
		out += fmt.Sprintf("%.1f", *weight)
	}
	if reps != nil {
		if out != "" {
			out += " x "
		}
		out += fmt.Sprintf("%d", *reps)
	}
	if rpe != nil {
		out += fmt.Sprintf(" @%.1f", *rpe)
	}
	if notes != nil && *notes != "" {
		out += color.New(color.Faint).Sprintf(" (%s)", truncate(*notes, 30))
	}
	if out == "" {
		out = "(empty)"
	}
	return out
}

func init() {
	workoutLogCmd.Flags().Float64VarP(&logWeight, "weight", "w", 0, "Weight used")
	workoutLogCmd.Flags().IntVarP(&logReps, "reps", "r", 0, "Repetitions performed")
	workoutLogCmd.Flags().Float64Var(&logRPE, "rpe", 0, "Rating of perceived exertion (1-10)")
	workoutLogCmd.Flags().IntVar(&logRest, "rest", 0, "Rest after the set in seconds")
	workoutLogCmd.Flags().StringVar(&logNotes, "notes", "", "Set notes")

	workoutFinishCmd.Flags().StringVarP(&finishType, "type", "t", "", "Workout type (default strength)")
	workoutFinishCmd.Flags().StringVar(&finishNotes, "notes", "", "Workout notes")

	workoutRecentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "Max results (default 10)")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutRestCmd)
	workoutCmd.AddCommand(workoutStatusCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutDiscardCmd)
	workoutCmd.AddCommand(workoutRecentCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	rootCmd.AddCommand(workoutCmd)
}
