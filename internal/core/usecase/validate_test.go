package usecase

import (
	"strings"
	"testing"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

func TestParseVerificationResultValid(t *testing.T) {
	raw := `{"probability":0.92,"confidence":"high","reasoning":"Shows skeletal structure consistent with radiograph."}`
	result, err := ParseVerificationResult(raw, domain.SchemaConfidence)
	if err != nil {
		t.Fatalf("ParseVerificationResult() error = %v", err)
	}
	if result.Probability != 0.92 || result.Confidence != domain.ConfidenceHigh {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseVerificationResultToleratesProse(t *testing.T) {
	raw := "Here is the answer:\n```json\n{\"probability\":0.5,\"confidence\":\"medium\",\"reasoning\":\"Partially visible.\"}\n```"
	result, err := ParseVerificationResult(raw, domain.SchemaConfidence)
	if err != nil {
		t.Fatalf("ParseVerificationResult() error = %v", err)
	}
	if result.Confidence != domain.ConfidenceMedium {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseVerificationResultNonJSON(t *testing.T) {
	for _, raw := range []string{
		"I cannot determine this.",
		"",
		"null",
		"[1,2,3]",
		`{"probability":`,
	} {
		_, err := ParseVerificationResult(raw, domain.SchemaConfidence)
		if !domain.IsKind(err, domain.ErrMalformedResponse) {
			t.Fatalf("raw %q: expected MalformedResponseError, got %v", raw, err)
		}
	}
}

func TestParseVerificationResultSchemaViolations(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{"missing probability", `{"confidence":"high","reasoning":"r"}`, "probability"},
		{"probability wrong type", `{"probability":"high","confidence":"high","reasoning":"r"}`, "probability"},
		{"probability above range", `{"probability":1.2,"confidence":"high","reasoning":"r"}`, "probability"},
		{"probability below range", `{"probability":-0.2,"confidence":"high","reasoning":"r"}`, "probability"},
		{"missing reasoning", `{"probability":0.5,"confidence":"high"}`, "reasoning"},
		{"blank reasoning", `{"probability":0.5,"confidence":"high","reasoning":"  "}`, "reasoning"},
		{"reasoning wrong type", `{"probability":0.5,"confidence":"high","reasoning":7}`, "reasoning"},
		{"missing confidence", `{"probability":0.5,"reasoning":"r"}`, "confidence"},
		{"confidence outside enum", `{"probability":0.5,"confidence":"certain","reasoning":"r"}`, "confidence"},
		{"confidence wrong type", `{"probability":0.5,"confidence":true,"reasoning":"r"}`, "confidence"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseVerificationResult(tc.raw, domain.SchemaConfidence)
			if !domain.IsKind(err, domain.ErrSchemaValidation) {
				t.Fatalf("expected SchemaValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("error must name failing field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestParseVerificationResultVerifiedVariant(t *testing.T) {
	result, err := ParseVerificationResult(`{"probability":1,"is_verified":true,"reasoning":"Clear radiograph."}`, domain.SchemaVerified)
	if err != nil {
		t.Fatalf("ParseVerificationResult() error = %v", err)
	}
	if result.Verified == nil || !*result.Verified {
		t.Fatalf("expected is_verified=true, got %+v", result.Verified)
	}

	_, err = ParseVerificationResult(`{"probability":1,"is_verified":"yes","reasoning":"r"}`, domain.SchemaVerified)
	if !domain.IsKind(err, domain.ErrSchemaValidation) {
		t.Fatalf("expected SchemaValidationError for non-boolean is_verified, got %v", err)
	}
}

func TestClampProbabilityAtBounds(t *testing.T) {
	raw := `{"probability":1.0000000000001,"confidence":"low","reasoning":"edge"}`
	_, err := ParseVerificationResult(raw, domain.SchemaConfidence)
	if !domain.IsKind(err, domain.ErrSchemaValidation) {
		t.Fatalf("expected rejection beyond slop, got %v", err)
	}

	got, err := clampProbability(1 + 1e-12)
	if err != nil || got != 1 {
		t.Fatalf("expected clamp to 1, got %v %v", got, err)
	}
	got, err = clampProbability(-1e-12)
	if err != nil || got != 0 {
		t.Fatalf("expected clamp to 0, got %v %v", got, err)
	}
}
