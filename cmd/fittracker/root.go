// ABOUTME: Root Cobra command for fittracker CLI.
// ABOUTME: Opens storage and the session store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittracker/internal/config"
	"github.com/harperreed/fittracker/internal/draftcache"
	"github.com/harperreed/fittracker/internal/session"
	"github.com/harperreed/fittracker/internal/storage"
)

var (
	cfg        *config.Config
	store      *storage.DB
	draftCache *draftcache.Cache
	sessions   *session.Store
)

var rootCmd = &cobra.Command{
	Use:   "fittracker",
	Short: "Personal workout tracker",
	Long: `Fittracker is a CLI tool for logging strength workouts.

EXERCISE CATALOG:

  $ fittracker exercise list                 # Browse the catalog
  $ fittracker exercise search chest         # Search by name, muscle, category
  $ fittracker exercise add "Sled Push"      # Add a custom exercise

WORKOUT SESSIONS:

  A session is a live draft: log sets as you train, then finish to save
  everything in one go. The draft survives restarts until you finish or
  discard it.

  $ fittracker workout start
  $ fittracker workout log "Back Squat" --weight 100 --reps 5
  $ fittracker workout log "Back Squat" --weight 102.5 --reps 5
  $ fittracker workout status
  $ fittracker workout finish --notes "felt strong"

HISTORY:

  $ fittracker workout recent                # Last 10 workouts
  $ fittracker workout show <id>             # Full workout detail

MCP INTEGRATION:

  Run 'fittracker mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data lives under ~/.local/share/fittracker (SQLite database plus the
  session draft cache). Set data_dir in the config file to move it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = storage.Acquire(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if err := store.Seed(); err != nil {
			return fmt.Errorf("failed to seed exercise catalog: %w", err)
		}

		draftCache, err = draftcache.Open(cfg.DraftCacheDir())
		if err != nil {
			return fmt.Errorf("failed to open session cache: %w", err)
		}
		sessions, err = session.NewStore(draftCache)
		if err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		log.Debug("storage ready", "db", cfg.DBPath(), "cache", cfg.DraftCacheDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if draftCache != nil {
			return draftCache.Close()
		}
		return nil
	},
}
