package ports

import (
	"context"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

// ExamClassifier sends a built prompt to the classification backend and
// returns its raw text output. The text is untrusted until validated.
type ExamClassifier interface {
	Classify(ctx context.Context, prompt domain.ModelPrompt) (string, error)
}

// ProgressReporter emits intermediate, non-terminal pipeline events toward
// the caller. Implementations must tolerate callers that no longer listen.
type ProgressReporter interface {
	Progress(ctx context.Context, message string)
}

// ProgressFunc adapts a function to the ProgressReporter interface.
type ProgressFunc func(ctx context.Context, message string)

func (f ProgressFunc) Progress(ctx context.Context, message string) {
	if f != nil {
		f(ctx, message)
	}
}
