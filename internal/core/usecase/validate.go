package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

// probabilitySlop absorbs float noise at the bounds; anything further out is
// a contract violation, not rounding.
const probabilitySlop = 1e-9

// ParseVerificationResult turns untrusted backend text into a validated
// result. Parse failures and schema violations come back as typed errors;
// no partial result is ever returned.
func ParseVerificationResult(raw string, variant domain.SchemaVariant) (domain.VerificationResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &fields); err != nil {
		return domain.VerificationResult{}, domain.WrapError(domain.ErrMalformedResponse, "parse backend response", err)
	}
	if fields == nil {
		return domain.VerificationResult{}, domain.WrapError(domain.ErrMalformedResponse, "parse backend response", errors.New("response is not a JSON object"))
	}

	probability, err := numberField(fields, "probability")
	if err != nil {
		return domain.VerificationResult{}, err
	}
	probability, err = clampProbability(probability)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	reasoning, err := stringField(fields, "reasoning")
	if err != nil {
		return domain.VerificationResult{}, err
	}
	if strings.TrimSpace(reasoning) == "" {
		return domain.VerificationResult{}, schemaErr("reasoning", errors.New("must be a non-empty string"))
	}

	result := domain.VerificationResult{
		Probability: probability,
		Reasoning:   reasoning,
	}

	switch variant {
	case domain.SchemaVerified:
		verified, err := boolField(fields, "is_verified")
		if err != nil {
			return domain.VerificationResult{}, err
		}
		result.Verified = &verified
	default:
		confidence, err := stringField(fields, "confidence")
		if err != nil {
			return domain.VerificationResult{}, err
		}
		if !domain.Confidence(confidence).Valid() {
			return domain.VerificationResult{}, schemaErr("confidence", fmt.Errorf("%q is not one of high, medium, low", confidence))
		}
		result.Confidence = domain.Confidence(confidence)
	}

	return result, nil
}

func clampProbability(p float64) (float64, error) {
	switch {
	case p >= 0 && p <= 1:
		return p, nil
	case p < 0 && p >= -probabilitySlop:
		return 0, nil
	case p > 1 && p <= 1+probabilitySlop:
		return 1, nil
	default:
		return 0, schemaErr("probability", fmt.Errorf("%v is outside [0,1]", p))
	}
}

func numberField(fields map[string]json.RawMessage, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, schemaErr(key, errors.New("field is missing"))
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, schemaErr(key, errors.New("must be a number"))
	}
	return value, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", schemaErr(key, errors.New("field is missing"))
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", schemaErr(key, errors.New("must be a string"))
	}
	return value, nil
}

func boolField(fields map[string]json.RawMessage, key string) (bool, error) {
	raw, ok := fields[key]
	if !ok {
		return false, schemaErr(key, errors.New("field is missing"))
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, schemaErr(key, errors.New("must be a boolean"))
	}
	return value, nil
}

func schemaErr(field string, err error) error {
	return domain.WrapError(domain.ErrSchemaValidation, "validate field "+field, err)
}

// Models wrap JSON in prose or fences often enough that cutting to the
// outermost object is worth doing before parsing.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
