package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Resilient wraps a Completer with a per-call timeout, a single retry on
// transient failure, and a circuit breaker so a dead provider fails fast
// instead of tying up every in-flight run.
type Resilient struct {
	inner   Completer
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

func NewResilient(inner Completer, timeout time.Duration, logger *slog.Logger) *Resilient {
	settings := gobreaker.Settings{
		Name:    "llm",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm breaker state change", "from", from.String(), "to", to.String())
		},
	}
	return &Resilient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		timeout: timeout,
		logger:  logger,
	}
}

func (r *Resilient) Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	text, err := r.attempt(ctx, system, messages, maxTokens)
	if err == nil {
		return text, nil
	}
	if !retryable(ctx, err) {
		return "", err
	}

	r.logger.Warn("llm call failed, retrying once", "error", err)
	text, retryErr := r.attempt(ctx, system, messages, maxTokens)
	if retryErr != nil {
		return "", fmt.Errorf("llm call failed after retry: %w", retryErr)
	}
	return text, nil
}

func (r *Resilient) attempt(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.Complete(callCtx, system, messages, maxTokens)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// retryable reports whether a failed attempt is worth one more try. Caller
// cancellation and an open breaker are not; everything else (timeouts,
// transport errors, 5xx responses) gets the single retry.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	return true
}
