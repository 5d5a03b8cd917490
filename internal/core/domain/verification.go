package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// SchemaVariant selects the wire contract returned to the tool caller.
// One variant is active per deployment; it drives both the output-contract
// text sent to the backend and the validator.
type SchemaVariant string

const (
	// SchemaConfidence returns {probability, confidence, reasoning}.
	SchemaConfidence SchemaVariant = "confidence"
	// SchemaVerified returns {probability, is_verified, reasoning}.
	SchemaVerified SchemaVariant = "verified"
)

func ParseSchemaVariant(raw string) (SchemaVariant, error) {
	switch SchemaVariant(strings.ToLower(strings.TrimSpace(raw))) {
	case SchemaConfidence:
		return SchemaConfidence, nil
	case SchemaVerified:
		return SchemaVerified, nil
	default:
		return "", fmt.Errorf("unknown output schema %q", raw)
	}
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ExamSubmission is the caller-supplied document plus claimed exam type for
// one verification request. It is owned by a single pipeline run.
type ExamSubmission struct {
	FileBytes       []byte
	MediaType       string
	ClaimedExamType string
}

// acceptedMediaTypes lists what the vision input of the backend accepts.
var acceptedMediaTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

// Normalize validates the submission and fills in a sniffed media type when
// the caller omitted one. It never touches the backend.
func (s ExamSubmission) Normalize() (ExamSubmission, error) {
	if len(s.FileBytes) == 0 {
		return ExamSubmission{}, WrapError(ErrValidation, "normalize submission", errors.New("file content is missing or empty"))
	}
	if strings.TrimSpace(s.ClaimedExamType) == "" {
		return ExamSubmission{}, WrapError(ErrValidation, "normalize submission", errors.New("exam type is missing or empty"))
	}

	out := s
	out.ClaimedExamType = strings.TrimSpace(s.ClaimedExamType)
	out.MediaType = strings.ToLower(strings.TrimSpace(s.MediaType))
	if out.MediaType == "" {
		out.MediaType = sniffMediaType(s.FileBytes)
	}
	if _, ok := acceptedMediaTypes[out.MediaType]; !ok {
		return ExamSubmission{}, WrapError(ErrValidation, "normalize submission", fmt.Errorf("unsupported media type %q", out.MediaType))
	}
	return out, nil
}

func sniffMediaType(data []byte) string {
	detected := http.DetectContentType(data)
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	return strings.TrimSpace(detected)
}

// ModelPrompt is the immutable multimodal instruction derived from a
// submission. Building it is deterministic.
type ModelPrompt struct {
	SystemInstruction string
	UserText          string
	EncodedImage      string
	MediaType         string
}

// DataURL renders the embedded image reference for multimodal chat input.
func (p ModelPrompt) DataURL() string {
	return "data:" + p.MediaType + ";base64," + p.EncodedImage
}

// VerificationResult is the only entity returned to the external caller.
// Probability is always within [0,1] and Reasoning is always populated.
// Exactly one of Confidence/Verified is set, per the active schema variant.
type VerificationResult struct {
	Probability float64    `json:"probability"`
	Confidence  Confidence `json:"confidence,omitempty"`
	Verified    *bool      `json:"is_verified,omitempty"`
	Reasoning   string     `json:"reasoning"`
}
