package usecase

import (
	"encoding/base64"
	"fmt"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

// BuildPrompt derives the multimodal instruction for a normalized submission.
// It is pure: the same submission and variant always yield the same prompt.
func BuildPrompt(submission domain.ExamSubmission, variant domain.SchemaVariant) domain.ModelPrompt {
	return domain.ModelPrompt{
		SystemInstruction: systemInstruction(variant),
		UserText: fmt.Sprintf(
			"Is the attached document a(n) %q document? Judge only from the attached image.",
			submission.ClaimedExamType,
		),
		EncodedImage: base64.StdEncoding.EncodeToString(submission.FileBytes),
		MediaType:    submission.MediaType,
	}
}

// The contract text below must mirror ParseVerificationResult exactly: the
// backend's only obligation is to produce text we can parse.
func systemInstruction(variant domain.SchemaVariant) string {
	const role = `You are an expert medical document analyst.
Decide whether the attached document matches the exam type claimed by the user.
Return a strict JSON object with exactly these keys and nothing else.
No markdown, no extra keys, no text outside the JSON object.
`

	if variant == domain.SchemaVerified {
		return role + `Keys:
probability (number from 0 to 1, how likely the document matches the claimed exam type),
is_verified (boolean, true only when the match is clear),
reasoning (non-empty string explaining the decision).`
	}
	return role + `Keys:
probability (number from 0 to 1, how likely the document matches the claimed exam type),
confidence (one of "high", "medium", "low"),
reasoning (non-empty string explaining the decision).`
}
