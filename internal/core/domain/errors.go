package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("invalid submission")
	ErrBackend           = errors.New("backend failure")
	ErrMalformedResponse = errors.New("malformed backend response")
	ErrSchemaValidation  = errors.New("response schema violation")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// Kind reports the taxonomy name of err for caller-facing messages.
// Internal detail stays in the wrapped chain and is never surfaced here.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrMalformedResponse):
		return "MalformedResponseError"
	case errors.Is(err, ErrSchemaValidation):
		return "SchemaValidationError"
	case errors.Is(err, ErrBackend):
		return "BackendError"
	default:
		return "InternalError"
	}
}
