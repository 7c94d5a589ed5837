// Package mcpserver exposes the bookmark operations as MCP tools over
// stdio. JSON-RPC owns stdout, so everything else in the process logs
// to stderr.
package mcpserver

import (
	"context"
	"errors"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/logger"
)

const serverInstructions = `Karakeep bookmark tools: search and fetch saved bookmarks, create new ` +
	`link or text bookmarks, read bookmark content as markdown, and organize ` +
	`bookmarks with lists and tags. Start with search-bookmarks; pass the ` +
	`returned nextCursor to page through large result sets.`

// Server wraps the MCP stdio server around the shared operation façade.
type Server struct {
	mcp    *server.MCPServer
	logger logger.Logger
}

func New(svc *bookmarks.Service, version string, log logger.Logger) *Server {
	srv := server.NewMCPServer(
		"karakeep",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	registerTools(srv, svc)

	return &Server{mcp: srv, logger: log}
}

// Start serves MCP over stdio until the context is canceled or stdin
// closes.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	stdio := server.NewStdioServer(s.mcp)
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
