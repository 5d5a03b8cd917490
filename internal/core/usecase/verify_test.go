package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
	"github.com/kirillkom/exam-verifier/internal/core/ports"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfakebody")

type classifierFake struct {
	calls    int
	response string
	err      error
}

func (f *classifierFake) Classify(context.Context, domain.ModelPrompt) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type reporterFake struct {
	messages []string
}

func (r *reporterFake) Progress(_ context.Context, message string) {
	r.messages = append(r.messages, message)
}

func validSubmission() domain.ExamSubmission {
	return domain.ExamSubmission{
		FileBytes:       pngBytes,
		MediaType:       "image/png",
		ClaimedExamType: "x-ray",
	}
}

func TestVerifySuccess(t *testing.T) {
	classifier := &classifierFake{
		response: `{"probability":0.92,"confidence":"high","reasoning":"Shows skeletal structure consistent with radiograph."}`,
	}
	reporter := &reporterFake{}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	result, err := uc.Verify(context.Background(), validSubmission(), reporter)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.Probability != 0.92 {
		t.Fatalf("expected probability 0.92, got %v", result.Probability)
	}
	if result.Confidence != domain.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q", result.Confidence)
	}
	if result.Reasoning != "Shows skeletal structure consistent with radiograph." {
		t.Fatalf("unexpected reasoning: %q", result.Reasoning)
	}
	if classifier.calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", classifier.calls)
	}
	if len(reporter.messages) != 2 || reporter.messages[0] != "analyzing document" || reporter.messages[1] != "analysis complete" {
		t.Fatalf("unexpected progress sequence: %v", reporter.messages)
	}
}

func TestVerifyMissingFileSkipsBackend(t *testing.T) {
	classifier := &classifierFake{response: "{}"}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	_, err := uc.Verify(context.Background(), domain.ExamSubmission{ClaimedExamType: "x-ray"}, nil)
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("backend must not be called on invalid input, got %d calls", classifier.calls)
	}
}

func TestVerifyEmptyExamTypeSkipsBackend(t *testing.T) {
	classifier := &classifierFake{response: "{}"}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	_, err := uc.Verify(context.Background(), domain.ExamSubmission{FileBytes: pngBytes, MediaType: "image/png", ClaimedExamType: "  "}, nil)
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("backend must not be called on invalid input, got %d calls", classifier.calls)
	}
}

func TestVerifyNonJSONResponse(t *testing.T) {
	classifier := &classifierFake{response: "I cannot determine this."}
	reporter := &reporterFake{}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	_, err := uc.Verify(context.Background(), validSubmission(), reporter)
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	for _, msg := range reporter.messages {
		if msg == "analysis complete" {
			t.Fatalf("completion must not be reported on failure: %v", reporter.messages)
		}
	}
}

func TestVerifyEmptyResponseIsBackendError(t *testing.T) {
	classifier := &classifierFake{response: "   \n"}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	_, err := uc.Verify(context.Background(), validSubmission(), nil)
	if !domain.IsKind(err, domain.ErrBackend) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}

func TestVerifyWrapsUntypedClassifierError(t *testing.T) {
	classifier := &classifierFake{err: errors.New("connection refused")}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaConfidence)

	_, err := uc.Verify(context.Background(), validSubmission(), nil)
	if !domain.IsKind(err, domain.ErrBackend) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected cause preserved in chain, got %v", err)
	}
}

func TestVerifyVerifiedVariant(t *testing.T) {
	classifier := &classifierFake{
		response: `{"probability":0.15,"is_verified":false,"reasoning":"Document appears to be a blood test report."}`,
	}
	uc := NewVerifyExamUseCase(classifier, domain.SchemaVerified)

	result, err := uc.Verify(context.Background(), validSubmission(), nil)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.Verified == nil || *result.Verified {
		t.Fatalf("expected is_verified=false, got %+v", result.Verified)
	}
	if result.Confidence != "" {
		t.Fatalf("confidence must stay empty in verified variant, got %q", result.Confidence)
	}
}

var _ ports.ProgressReporter = (*reporterFake)(nil)
var _ ports.ExamClassifier = (*classifierFake)(nil)
