package mcpadapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

func verifyTool() mcp.Tool {
	return mcp.NewTool("verify_exam_document",
		mcp.WithDescription("Verify that an uploaded medical document matches the claimed exam type. Returns probability, a confidence signal, and reasoning."),
		mcp.WithString("file_data",
			mcp.Required(),
			mcp.Description("Base64-encoded document bytes."),
		),
		mcp.WithString("exam_type",
			mcp.Required(),
			mcp.Description("Claimed exam type, e.g. x-ray, mri, ultrasound."),
		),
		mcp.WithString("media_type",
			mcp.Description("MIME type of the document. Sniffed from content when omitted."),
		),
	)
}

// handleVerify produces exactly one terminal event per invocation. Internal
// failure detail goes to the log; the caller sees a generic message plus the
// error kind.
func (s *Server) handleVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.metrics.StartVerification()

	submission, err := decodeSubmission(req)
	if err == nil {
		var result domain.VerificationResult
		result, err = s.verifier.Verify(ctx, submission, s.progressReporter(ctx, req, runID))
		if err == nil {
			return s.terminalSuccess(runID, start, result)
		}
	}
	return s.terminalError(runID, start, err)
}

func (s *Server) terminalSuccess(runID string, start time.Time, result domain.VerificationResult) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return s.terminalError(runID, start, err)
	}

	s.metrics.FinishVerification(s.service, time.Since(start), "")
	s.logger.Info("verification_completed",
		"run_id", runID,
		"probability", result.Probability,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) terminalError(runID string, start time.Time, err error) (*mcp.CallToolResult, error) {
	kind := domain.Kind(err)
	s.metrics.FinishVerification(s.service, time.Since(start), kind)
	s.logger.Error("verification_failed",
		"run_id", runID,
		"error_kind", kind,
		"error", err,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return mcp.NewToolResultError("failed to verify exam document: " + kind), nil
}

func decodeSubmission(req mcp.CallToolRequest) (domain.ExamSubmission, error) {
	submission := domain.ExamSubmission{
		MediaType:       req.GetString("media_type", ""),
		ClaimedExamType: req.GetString("exam_type", ""),
	}

	// Presence checks live in the pipeline's normalizer; only the base64
	// framing is this adapter's concern.
	fileData := strings.TrimSpace(req.GetString("file_data", ""))
	if fileData != "" {
		decoded, err := base64.StdEncoding.DecodeString(fileData)
		if err != nil {
			return domain.ExamSubmission{}, domain.WrapError(domain.ErrValidation, "decode file_data", err)
		}
		submission.FileBytes = decoded
	}
	return submission, nil
}
