package mcpadapter

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/exam-verifier/internal/core/ports"
)

// notifyingReporter forwards pipeline progress as notifications/progress
// events. A caller without a progress token, or one that already went away,
// just stops observing; the pipeline is never interrupted for it.
type notifyingReporter struct {
	logger *slog.Logger
	srv    *server.MCPServer
	token  mcp.ProgressToken
	runID  string
	step   int
}

func (s *Server) progressReporter(ctx context.Context, req mcp.CallToolRequest, runID string) ports.ProgressReporter {
	var token mcp.ProgressToken
	if req.Params.Meta != nil {
		token = req.Params.Meta.ProgressToken
	}
	return &notifyingReporter{
		logger: s.logger,
		srv:    server.ServerFromContext(ctx),
		token:  token,
		runID:  runID,
	}
}

func (r *notifyingReporter) Progress(ctx context.Context, message string) {
	r.step++
	r.logger.Debug("pipeline_progress", "run_id", r.runID, "step", r.step, "message", message)

	if r.srv == nil || r.token == nil {
		return
	}
	err := r.srv.SendNotificationToClient(ctx, "notifications/progress", map[string]any{
		"progressToken": r.token,
		"progress":      r.step,
		"message":       message,
	})
	if err != nil {
		r.logger.Debug("progress_notification_dropped", "run_id", r.runID, "error", err)
	}
}
