// Package mcp assembles the shapegen MCP server.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/logging"
	"github.com/usestring/shapegen/internal/mcp/tools"
	"github.com/usestring/shapegen/internal/resultcache"
)

const serverVersion = "1.0.0"

// Server wraps the MCP server with shapegen components.
type Server struct {
	mcpServer  *sdkmcp.Server
	logCleanup func() error
}

// NewServer creates the shapegen MCP server. Configuration is loaded from
// environment variables (see internal/config).
func NewServer() (*Server, error) {
	cfg := config.Load()

	logCleanup, err := logging.Setup(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	results, err := resultcache.New(cfg.ResultCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	srv := sdkmcp.NewServer(
		&sdkmcp.Implementation{
			Name:    "shapegen-mcp",
			Version: serverVersion,
		},
		nil,
	)
	srv.AddReceivingMiddleware(LoggingMiddleware())

	tools.Register(srv, &tools.Deps{
		Config:  cfg,
		Results: results,
	})

	return &Server{mcpServer: srv, logCleanup: logCleanup}, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
