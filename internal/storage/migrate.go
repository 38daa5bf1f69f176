// ABOUTME: Versioned schema migrations tracked in the meta table.
// ABOUTME: The whole pending sweep runs in one transaction; idempotent.
package storage

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
)

// migration is one versioned schema change. Versions are positive and
// strictly increasing; statements must be safe to re-execute against an
// already-migrated database (guarded CREATE).
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS exercises (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				category TEXT,
				equipment TEXT,
				muscleGroup TEXT,
				isCustom INTEGER DEFAULT 0,
				createdAt INTEGER DEFAULT (strftime('%s','now'))
			)`,
			`CREATE TABLE IF NOT EXISTS workouts (
				id TEXT PRIMARY KEY,
				userId TEXT NOT NULL,
				type TEXT,
				startedAt INTEGER NOT NULL,
				endedAt INTEGER,
				notes TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS workout_exercises (
				id TEXT PRIMARY KEY,
				workoutId TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
				exerciseId TEXT NOT NULL REFERENCES exercises(id),
				orderIndex INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS sets (
				id TEXT PRIMARY KEY,
				workoutExerciseId TEXT NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
				setIndex INTEGER NOT NULL,
				weight REAL,
				reps INTEGER,
				rpe REAL,
				restSeconds INTEGER,
				notes TEXT
			)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(startedAt DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workoutId, orderIndex)`,
			`CREATE INDEX IF NOT EXISTS idx_sets_workout_exercise ON sets(workoutExerciseId, setIndex)`,
		},
	},
	// Future migrations (version 3, 4, ...) go here.
}

// Migrate applies all pending migrations. Safe to call on every process
// start: satisfied versions are skipped, and the pending sweep runs in a
// single transaction so a failure leaves the stored version unchanged
// and the sweep replayable.
func (d *DB) Migrate() error {
	if err := d.ensureMetaTable(); err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&raw); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	current, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse schema version %q: %w", raw, err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		log.Debug("applying migration", "version", m.version)
		for _, stmt := range m.statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("apply migration %d: %w", m.version, err)
			}
		}
		if _, err := tx.Exec(`UPDATE meta SET value = ? WHERE key = 'schema_version'`,
			strconv.Itoa(m.version)); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		current = m.version
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// SchemaVersion reads the stored schema version, 0 when unmigrated.
func (d *DB) SchemaVersion() (int, error) {
	var raw string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&raw)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return strconv.Atoi(raw)
}

// ensureMetaTable creates the key/value metadata table and seeds
// schema_version to "0" on first run; an existing value is never
// overwritten.
func (d *DB) ensureMetaTable() error {
	if _, err := d.db.Exec(`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}
	if _, err := d.db.Exec(
		`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', '0')`); err != nil {
		return fmt.Errorf("seed schema version: %w", err)
	}
	return nil
}
