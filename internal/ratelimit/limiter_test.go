package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLimiter_Wait(t *testing.T) {
	sl := NewServiceLimiter(ServiceRates{S3: 100, Temporal: 100})

	// Should not block at high rate.
	err := sl.Wait(context.Background(), "s3")
	require.NoError(t, err)
	err = sl.Wait(context.Background(), "temporal")
	require.NoError(t, err)
}

func TestServiceLimiter_UnknownService(t *testing.T) {
	sl := NewServiceLimiter(DefaultServiceRates())

	// Unknown service should pass through.
	err := sl.Wait(context.Background(), "UnknownService")
	assert.NoError(t, err)
}

func TestServiceLimiter_CancelledContext(t *testing.T) {
	// Create a very restrictive limiter.
	sl := NewServiceLimiter(ServiceRates{S3: 0.001})

	// Consume the burst.
	_ = sl.Wait(context.Background(), "s3")

	// Next call with cancelled context should error.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sl.Wait(ctx, "s3")
	assert.Error(t, err)
}
