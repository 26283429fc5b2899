package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/rplmatch/internal/service"
)

var (
	// ErrRateLimit marks a provider reply asking us to slow down.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is wrapped into the last failure once attempts run out.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError tags an error with whether another attempt may succeed.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// retryDefaults fills unset fields: 3 attempts starting at 100ms, doubling
// up to 30s.
func retryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}

// giveUp reports failures that another attempt cannot fix.
func giveUp(err error) bool {
	var tagged *RetryableError
	if errors.As(err, &tagged) && !tagged.Retryable {
		return true
	}
	return errors.Is(err, context.Canceled)
}

// WithRetry runs operation until it succeeds, returns a Permanent error,
// the context ends or MaxAttempts is reached. The pause between attempts
// grows by Multiplier and is capped at MaxDelay; a rate limited attempt
// waits the full MaxDelay.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = retryDefaults(opts)
	pause := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		switch {
		case err == nil:
			return nil
		case giveUp(err):
			return err
		case attempt >= opts.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, err)
		}

		wait := pause
		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}

		slog.Warn("Attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		pause = min(time.Duration(float64(wait)*opts.Multiplier), opts.MaxDelay)
	}
}
