package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := newRateLimiter(3)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.wait(ctx), "request %d fits the burst", i+1)
	}

	// The fourth token refills after 20s, far beyond the deadline.
	require.Error(t, rl.wait(ctx))
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	rl := newRateLimiter(1)
	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
}

func TestRateLimiter_DefaultRate(t *testing.T) {
	rl := newRateLimiter(0)
	assert.Equal(t, 60, rl.limiter.Burst())
}
