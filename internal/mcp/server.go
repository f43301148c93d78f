// Package mcp exposes the gateway over the Model Context Protocol.
// An MCP-speaking agent gets exactly three tools: execute, check, and
// actions. There is no side door; every execute lands in the same
// guarded dispatcher as the CLI and the in-process API.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/gateway"
)

// Server wraps the MCP SDK server around one gateway.
type Server struct {
	mcpServer *mcpsdk.Server
	gw        *gateway.Gateway
	log       zerolog.Logger
}

// New builds the MCP surface for a gateway.
func New(gw *gateway.Gateway, version string, logger zerolog.Logger) *Server {
	s := &Server{gw: gw, log: logger}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "toolgate",
			Version: version,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP on stdio. Blocks until ctx is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Msg("mcp server on stdio")
	defer s.log.Info().Msg("mcp server stopped")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name: "toolgate_execute",
		Description: "Execute an action through the safety gateway. Blocked or failed " +
			"actions return an error result carrying the tier and reason.",
	}, s.handleExecute)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name: "toolgate_check",
		Description: "Dry-run an action through sanitization and authorization " +
			"without executing it or writing audit.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toolgate_actions",
		Description: "List the registered actions with their risk tiers.",
	}, s.handleActions)
}
