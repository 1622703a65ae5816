package completion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

const initialBackoff = 1 * time.Second

// Retrying puts a deadline on every call to the wrapped Completer and, when
// more than one attempt is configured, retries failures with exponential backoff.
type Retrying struct {
	next        Completer
	name        string
	maxAttempts int
	timeout     time.Duration
	backoff     time.Duration
	logger      *zerolog.Logger
}

// NewRetrying wraps next. maxAttempts below 1 is treated as 1 and a zero
// timeout leaves the caller's deadline untouched.
func NewRetrying(next Completer, name string, maxAttempts int, timeout time.Duration, logger *zerolog.Logger) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Retrying{
		next:        next,
		name:        name,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		backoff:     initialBackoff,
		logger:      logger,
	}
}

// Complete implements Completer.
func (r *Retrying) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for i := 0; i < r.maxAttempts; i++ {
		r.logger.Debug().Msgf("Attempt %d: Calling %s API...", i+1, r.name)

		text, err := r.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		r.logger.Warn().Err(err).Msgf("Attempt %d failed", i+1)

		// The caller gave up; further attempts cannot succeed.
		if ctx.Err() != nil {
			return "", lastErr
		}
		if i == r.maxAttempts-1 {
			break
		}

		wait := r.backoff * time.Duration(math.Pow(2, float64(i)))
		select {
		case <-ctx.Done():
			return "", lastErr
		case <-time.After(wait):
		}
	}

	if r.maxAttempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("failed to call %s API after %d attempts: %w", r.name, r.maxAttempts, lastErr)
}

func (r *Retrying) attempt(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.next.Complete(callCtx, prompt)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s: %v", ErrTimeout, r.timeout, err)
		}
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
