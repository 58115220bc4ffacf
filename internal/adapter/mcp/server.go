// Package mcp exposes casepilot over the Model Context Protocol so AI
// assistants can run triage and read reports as tools.
package mcp

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/port/reportstore"
	"github.com/casepilot/casepilot/internal/port/worker"
)

// TriageRunner is the slice of the triage service the MCP tools need.
type TriageRunner interface {
	ProcessText(ctx context.Context, text string) (*report.Report, error)
}

// ServerConfig holds MCP server identity.
type ServerConfig struct {
	Name    string
	Version string
}

// ServerDeps are the collaborators the tools call into. Nil deps make the
// corresponding tools report a configuration error instead of panicking.
type ServerDeps struct {
	Triage   TriageRunner
	Store    reportstore.Store
	Registry *worker.Registry
}

// Server wraps the mcp-go server with casepilot's tool set.
type Server struct {
	mcpServer *mcpserver.MCPServer
	deps      ServerDeps
}

// NewServer creates the MCP server and registers all tools.
func NewServer(cfg ServerConfig, deps ServerDeps) *Server {
	s := &Server{
		mcpServer: mcpserver.NewMCPServer(cfg.Name, cfg.Version,
			mcpserver.WithToolCapabilities(true)),
		deps: deps,
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}
