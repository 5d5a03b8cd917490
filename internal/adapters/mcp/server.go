// Package mcpadapter exposes the verification pipeline as a single MCP tool.
// It owns the outer contract: argument decoding, progress notifications, and
// the terminal result or error for each invocation.
package mcpadapter

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/exam-verifier/internal/core/ports"
	"github.com/kirillkom/exam-verifier/internal/observability/metrics"
)

const (
	serverName    = "exam-verifier"
	serverVersion = "1.0.0"
)

type Server struct {
	verifier ports.ExamVerifier
	logger   *slog.Logger
	metrics  *metrics.PipelineMetrics
	service  string
	mcp      *server.MCPServer
}

func NewServer(verifier ports.ExamVerifier, logger *slog.Logger, pipelineMetrics *metrics.PipelineMetrics, service string) *Server {
	s := &Server{
		verifier: verifier,
		logger:   logger,
		metrics:  pipelineMetrics,
		service:  service,
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	mcpServer.AddTool(verifyTool(), s.handleVerify)
	s.mcp = mcpServer
	return s
}

// ServeStdio blocks serving the JSON-RPC channel over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// HTTPServer wraps the MCP server for the streamable HTTP transport.
func (s *Server) HTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcp)
}
