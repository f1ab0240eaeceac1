// Command shapegen-mcp serves shape inference over the Model Context
// Protocol on stdio.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/shapegen/internal/mcp"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - SHAPEGEN_LOG_LEVEL: debug, info, warn, error (default: info)
	// - SHAPEGEN_LOG_FILE: path to log file (default: stderr only)
	// - SHAPEGEN_MAX_DOCS_PER_CALL, SHAPEGEN_RESULT_CACHE_MAX_ITEMS
	// - etc. (see internal/config for all options)
	server, err := mcp.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting shapegen MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
