package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_InFlight(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxInFlightKeys: 100})
	require.NotNil(t, c)

	require.NoError(t, c.Acquire(ctx, 60))
	assert.Equal(t, int64(60), c.InFlight())

	// 50 more would exceed the cap and blocks until released.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := c.Acquire(blocked, 50)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(60), c.InFlight())

	c.Release(60)
	assert.Equal(t, int64(0), c.InFlight())

	require.NoError(t, c.Acquire(ctx, 50))
	c.Release(50)
}

func TestController_OversizedRequest(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxInFlightKeys: 10})

	require.NoError(t, c.Acquire(ctx, 1000))
	assert.Equal(t, int64(1000), c.InFlight())

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.Acquire(blocked, 1))

	c.Release(1000)
	require.NoError(t, c.Acquire(ctx, 1))
	c.Release(1)
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})
	assert.Nil(t, c)

	// nil controller admits everything
	require.NoError(t, c.Acquire(context.Background(), 1<<30))
	c.Release(1 << 30)
	assert.Equal(t, int64(0), c.InFlight())
	assert.Equal(t, int64(0), c.MaxInFlightKeys())
}

func TestController_Rate(t *testing.T) {
	c := NewController(Config{KeysPerSecond: 10})
	require.NotNil(t, c)

	// The first burst is free.
	require.NoError(t, c.Acquire(context.Background(), 10))
	c.Release(10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.Acquire(ctx, 10))
}
