package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker/v2"
)

// Breaker guards an outbound capability against a degraded dependency. It
// never retries: every request gets at most one attempt, and an open circuit
// sheds the call before it starts.
type Breaker struct {
	cfg Config
	cb  *gobreaker.CircuitBreaker[any]
}

// NewBreaker builds a named breaker. recordFailure decides whether an error
// counts toward tripping; nil counts every error.
func NewBreaker(name string, cfg Config, recordFailure func(error) bool) *Breaker {
	cfg = cfg.normalize()
	if recordFailure == nil {
		recordFailure = func(error) bool { return true }
	}

	b := &Breaker{cfg: cfg}
	if !cfg.Enabled {
		return b
	}

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return !recordFailure(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return b
}

// Execute runs fn exactly once unless the circuit is open.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	if b == nil || b.cb == nil {
		return fn(ctx)
	}
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	return err
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
