package phonetic

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerModel guards a G2P model with a circuit breaker. After a run of
// consecutive failures the breaker opens and calls fail immediately until
// the timeout lets a probe through.
type BreakerModel struct {
	model G2P
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerModel wraps model. The breaker opens after failures
// consecutive errors and half-opens after timeout.
func NewBreakerModel(model G2P, failures uint32, timeout time.Duration, logger *slog.Logger) *BreakerModel {
	if logger == nil {
		logger = slog.Default()
	}
	if failures == 0 {
		failures = 1
	}

	settings := gobreaker.Settings{
		Name:        model.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A caller giving up says nothing about the model's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("g2p circuit breaker changed state",
				slog.String("component", "phonetic"),
				slog.String("model", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &BreakerModel{
		model: model,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped model's name.
func (b *BreakerModel) Name() string {
	return b.model.Name()
}

// State exposes the breaker state for health reporting and tests.
func (b *BreakerModel) State() gobreaker.State {
	return b.cb.State()
}

// BreakerState returns the state of the circuit breaker behind t. It
// reports false when t does not call a model through a breaker.
func BreakerState(t Transcriber) (gobreaker.State, bool) {
	ext, ok := t.(*External)
	if !ok {
		return gobreaker.StateClosed, false
	}
	b, ok := ext.model.(*BreakerModel)
	if !ok {
		return gobreaker.StateClosed, false
	}
	return b.State(), true
}

// Phonemes calls the wrapped model through the breaker.
func (b *BreakerModel) Phonemes(ctx context.Context, word string) ([]string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		phonemes, err := b.model.Phonemes(ctx, word)
		return phonemes, err
	})
	if err != nil {
		return nil, err
	}
	return out.([]string), nil
}
