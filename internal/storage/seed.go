// ABOUTME: Base exercise catalog seeding.
// ABOUTME: Runs once against an empty exercises table, inside one transaction.
package storage

import (
	"fmt"

	"github.com/google/uuid"
)

type seedExercise struct {
	name        string
	category    string
	equipment   string
	muscleGroup string
}

var baseExercises = []seedExercise{
	{"Barbell Bench Press", "Push", "Barbell", "Chest"},
	{"Incline Dumbbell Press", "Push", "Dumbbells", "Chest"},
	{"Pull-Up", "Pull", "Bodyweight", "Back"},
	{"Seated Cable Row", "Pull", "Cable", "Back"},
	{"Back Squat", "Legs", "Barbell", "Quadriceps"},
	{"Romanian Deadlift", "Legs", "Barbell", "Hamstrings"},
	{"Dumbbell Shoulder Press", "Push", "Dumbbells", "Shoulders"},
	{"Cable Lateral Raise", "Push", "Cable", "Shoulders"},
	{"Hammer Curl", "Pull", "Dumbbells", "Biceps"},
	{"Rope Triceps Pushdown", "Push", "Cable", "Triceps"},
	{"Deadlift", "Pull", "Barbell", "Back"},
	{"Lat Pulldown", "Pull", "Machine", "Back"},
	{"Face Pull", "Pull", "Cable", "Rear Delts"},
	{"Single-Arm Dumbbell Row", "Pull", "Dumbbells", "Back"},
	{"Hip Thrust", "Legs", "Barbell", "Glutes"},
	{"Leg Press", "Legs", "Machine", "Quadriceps"},
	{"Lunge", "Legs", "Dumbbells", "Quadriceps"},
	{"Calf Raise", "Legs", "Machine", "Calves"},
	{"Plank", "Core", "Bodyweight", "Abs"},
	{"Hanging Knee Raise", "Core", "Bodyweight", "Abs"},
	{"Russian Twist", "Core", "Dumbbell", "Obliques"},
	{"Farmer's Walk", "Grip", "Dumbbells", "Forearms"},
	{"Push-Up", "Push", "Bodyweight", "Chest"},
}

// Seed inserts the base exercise catalog when the exercises table is
// empty. A non-empty table is left alone, so user data survives.
func (d *DB) Seed() error {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, ex := range baseExercises {
		if _, err := tx.Exec(
			`INSERT INTO exercises (id, name, category, equipment, muscleGroup, isCustom)
			 VALUES (?, ?, ?, ?, ?, 0)`,
			uuid.New().String(), ex.name, ex.category, ex.equipment, ex.muscleGroup,
		); err != nil {
			return fmt.Errorf("seed exercise %q: %w", ex.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// ResetSeeds clears the exercises table and reseeds it. Development
// helper only; fails if any workout still references an exercise.
func (d *DB) ResetSeeds() error {
	if _, err := d.db.Exec(`DELETE FROM exercises`); err != nil {
		return fmt.Errorf("clear exercises: %w", err)
	}
	return d.Seed()
}
