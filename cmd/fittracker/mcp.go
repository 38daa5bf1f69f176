// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/fittracker/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log your training through a
standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fittracker": {
        "command": "fittracker",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises     List the exercise catalog
  search_exercises   Search exercises
  add_exercise       Add a custom exercise
  start_workout      Start a workout session
  log_set            Log a set in the current session
  update_set         Update a logged set
  remove_set         Remove a logged set
  start_rest_timer   Start a rest countdown
  finish_workout     Save the session as a workout
  discard_workout    Discard the session
  list_workouts      List recent workouts
  get_workout        Get a workout with exercises and sets

AVAILABLE RESOURCES:

  fittracker://session   The current session draft
  fittracker://recent    Recent completed workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, sessions, cfg.GetUserID())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
