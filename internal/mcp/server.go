// Package mcp serves the knowledge base to MCP clients over streamable
// HTTP.
package mcp

import (
	"context"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nrivera/botkb/internal/db"
)

// ToolAdapter handles one MCP tool call.
type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Registration pairs a tool schema with its handler.
type Registration struct {
	Tool    mcp.Tool
	Handler ToolAdapter
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *db.Database
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"botkb-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	for _, reg := range cfg.Tools {
		handler := reg.Handler
		mcpServer.AddTool(reg.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
