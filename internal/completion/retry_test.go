package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrying_SingleAttemptDoesNotRetry(t *testing.T) {
	calls := 0
	boom := errors.New("rate limited")
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", boom
	}), "stub", 1, time.Second, nil)

	_, err := r.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRetrying_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok: " + prompt, nil
	}), "stub", 3, time.Second, nil)
	r.backoff = time.Millisecond

	text, err := r.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok: hello", text)
	assert.Equal(t, 3, calls)
}

func TestRetrying_ExhaustedAttemptsWrapsLastError(t *testing.T) {
	boom := errors.New("still down")
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	}), "stub", 2, time.Second, nil)
	r.backoff = time.Millisecond

	_, err := r.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestRetrying_TimeoutIsReported(t *testing.T) {
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), "stub", 1, 10*time.Millisecond, nil)

	_, err := r.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRetrying_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		cancel()
		return "", errors.New("boom")
	}), "stub", 5, time.Second, nil)
	r.backoff = time.Millisecond

	_, err := r.Complete(ctx, "hello")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrying_EmptyTextIsAnError(t *testing.T) {
	r := NewRetrying(CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", nil
	}), "stub", 1, time.Second, nil)

	_, err := r.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
