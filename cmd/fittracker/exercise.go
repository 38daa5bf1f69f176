// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports list, search, add, and remove subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittracker/internal/models"
)

var (
	exerciseCategory    string
	exerciseEquipment   string
	exerciseMuscleGroup string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Browse and manage the exercise catalog.

The catalog ships with a base set of common lifts. Exercises you add are
marked custom and can be removed; the base set is seeded once and then
left alone.

COMMANDS:

  list     List all exercises alphabetically
  search   Search by name, muscle group, or category
  add      Add a custom exercise
  remove   Remove an exercise by ID`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		printExercises(exercises)
		return nil
	},
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search exercises",
	Long: `Search exercises by substring match on name, muscle group, or category.

Examples:
  fittracker exercise search bench
  fittracker exercise search hamstrings
  fittracker exercise search core`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.SearchExercises(args[0])
		if err != nil {
			return fmt.Errorf("failed to search exercises: %w", err)
		}
		printExercises(exercises)
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the catalog.

Examples:
  fittracker exercise add "Sled Push" --category Legs --muscle-group Quadriceps
  fittracker exercise add "Zercher Squat" --equipment Barbell`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := models.CreateExerciseInput{Name: args[0]}
		if exerciseCategory != "" {
			input.Category = &exerciseCategory
		}
		if exerciseEquipment != "" {
			input.Equipment = &exerciseEquipment
		}
		if exerciseMuscleGroup != "" {
			input.MuscleGroup = &exerciseMuscleGroup
		}

		ex, err := store.CreateExercise(input)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", ex.Name)
		fmt.Printf("  ID: %s\n", ex.ID)
		return nil
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid exercise ID: %s", args[0])
		}
		if err := store.DeleteExercise(id); err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		color.Green("✓ Removed exercise %s", args[0])
		return nil
	},
}

func printExercises(exercises []*models.Exercise) {
	if len(exercises) == 0 {
		fmt.Println("No exercises found.")
		return
	}

	faint := color.New(color.Faint)
	for _, ex := range exercises {
		custom := ""
		if ex.IsCustom {
			custom = faint.Sprint(" (custom)")
		}
		detail := ""
		if ex.MuscleGroup != nil {
			detail = *ex.MuscleGroup
		}
		if ex.Equipment != nil {
			if detail != "" {
				detail += ", "
			}
			detail += *ex.Equipment
		}
		if detail != "" {
			detail = faint.Sprintf("  %s", detail)
		}
		fmt.Printf("%s %s%s%s\n",
			faint.Sprint(ex.ID.String()[:8]),
			padRight(ex.Name, 28),
			detail,
			custom)
	}
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "Category (Push, Pull, Legs, Core, ...)")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "Equipment used")
	exerciseAddCmd.Flags().StringVarP(&exerciseMuscleGroup, "muscle-group", "m", "", "Primary muscle group")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseSearchCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRemoveCmd)
	rootCmd.AddCommand(exerciseCmd)
}
