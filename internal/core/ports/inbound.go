package ports

import (
	"context"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

// ExamVerifier is the inbound contract for one verification request.
// Progress events go through reporter; the terminal outcome is the return.
type ExamVerifier interface {
	Verify(ctx context.Context, submission domain.ExamSubmission, reporter ProgressReporter) (domain.VerificationResult, error)
}
