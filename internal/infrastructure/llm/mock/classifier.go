// Package mock fabricates plausible classification output without any
// network call. It serves demos and tests where no live credential exists.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kirillkom/exam-verifier/internal/core/domain"
)

type Classifier struct {
	delay   time.Duration
	variant domain.SchemaVariant
}

func New(delay time.Duration, variant domain.SchemaVariant) *Classifier {
	return &Classifier{
		delay:   delay,
		variant: variant,
	}
}

// Classify waits out a simulated backend latency, then returns a fixed-shape
// verdict. Same prompt, same output.
func (c *Classifier) Classify(ctx context.Context, prompt domain.ModelPrompt) (string, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	reasoning := fmt.Sprintf(
		"Mock verdict: no live backend configured; the %s payload was accepted as a plausible match for the requested exam type.",
		prompt.MediaType,
	)

	payload := map[string]any{
		"probability": 0.92,
		"reasoning":   reasoning,
	}
	if c.variant == domain.SchemaVerified {
		payload["is_verified"] = true
	} else {
		payload["confidence"] = string(domain.ConfidenceHigh)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal mock verdict: %w", err)
	}
	return string(raw), nil
}
