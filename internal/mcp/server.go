package mcp

import (
	"time"

	"github.com/alexanderramin/sprout/internal/service"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "sprout"

// Services are the use cases exposed as tools.
type Services struct {
	Journals   service.JournalService
	Tasks      service.TaskService
	Dashboard  service.DashboardService
	Generation service.GenerationService
}

// Tools binds the tool handlers to one user.
type Tools struct {
	svc    Services
	userID string
	loc    *time.Location
	now    func() time.Time
}

func NewTools(svc Services, userID string, loc *time.Location) *Tools {
	if loc == nil {
		loc = time.UTC
	}
	return &Tools{svc: svc, userID: userID, loc: loc, now: time.Now}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(version string, tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	tools.Register(s)
	return s
}

// ServeStdio runs the stdio loop until stdin closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
