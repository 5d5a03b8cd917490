package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
	"github.com/kirillkom/exam-verifier/internal/core/ports"
)

type VerifyExamUseCase struct {
	classifier ports.ExamClassifier
	variant    domain.SchemaVariant
}

func NewVerifyExamUseCase(classifier ports.ExamClassifier, variant domain.SchemaVariant) *VerifyExamUseCase {
	return &VerifyExamUseCase{
		classifier: classifier,
		variant:    variant,
	}
}

// Verify runs the single-shot pipeline: normalize, build prompt, invoke the
// backend once, validate its output. Exactly one result or error per call;
// nothing is retried here.
func (uc *VerifyExamUseCase) Verify(
	ctx context.Context,
	submission domain.ExamSubmission,
	reporter ports.ProgressReporter,
) (domain.VerificationResult, error) {
	if reporter == nil {
		reporter = ports.ProgressFunc(nil)
	}
	reporter.Progress(ctx, "analyzing document")

	normalized, err := submission.Normalize()
	if err != nil {
		return domain.VerificationResult{}, err
	}

	prompt := BuildPrompt(normalized, uc.variant)

	raw, err := uc.classifier.Classify(ctx, prompt)
	if err != nil {
		return domain.VerificationResult{}, uc.wrapBackendErr(err)
	}
	if strings.TrimSpace(raw) == "" {
		return domain.VerificationResult{}, domain.WrapError(domain.ErrBackend, "classify document", errors.New("empty backend response"))
	}

	result, err := ParseVerificationResult(raw, uc.variant)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	reporter.Progress(ctx, "analysis complete")
	return result, nil
}

func (uc *VerifyExamUseCase) wrapBackendErr(err error) error {
	if domain.IsKind(err, domain.ErrBackend) {
		return err
	}
	return domain.WrapError(domain.ErrBackend, "classify document", err)
}
