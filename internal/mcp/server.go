// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Wraps the MCP server with storage and session store access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittracker/internal/session"
	"github.com/harperreed/fittracker/internal/storage"
)

// Server wraps the MCP server with storage and session access.
type Server struct {
	mcpServer *mcp.Server
	db        *storage.DB
	sessions  *session.Store
	userID    string
}

// NewServer creates a new MCP server over the given storage and
// session store. userID is stamped onto committed workouts.
func NewServer(db *storage.DB, sessions *session.Store, userID string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittracker",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
		sessions:  sessions,
		userID:    userID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
