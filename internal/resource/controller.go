package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxInFlightKeys caps the total length of queries probed concurrently.
	// If 0, no cap is enforced (only tracking).
	MaxInFlightKeys int64

	// KeysPerSecond throttles admission of query keys.
	// If 0, unlimited.
	KeysPerSecond float64
}

// Controller admits query work against the configured limits.
type Controller struct {
	cfg Config

	keySem   *semaphore.Weighted // nil if unlimited
	inFlight atomic.Int64

	limiter *rate.Limiter // nil if unlimited
	burst   int
}

// NewController creates a new resource controller. It returns nil when cfg
// sets no limit.
func NewController(cfg Config) *Controller {
	if cfg.MaxInFlightKeys <= 0 && cfg.KeysPerSecond <= 0 {
		return nil
	}

	c := &Controller{cfg: cfg}

	if cfg.MaxInFlightKeys > 0 {
		c.keySem = semaphore.NewWeighted(cfg.MaxInFlightKeys)
	}

	if cfg.KeysPerSecond > 0 {
		c.burst = max(int(cfg.KeysPerSecond), 1)
		c.limiter = rate.NewLimiter(rate.Limit(cfg.KeysPerSecond), c.burst)
	}

	return c
}

// Acquire blocks until keys may be probed, or ctx is done. A request larger
// than a limit is clamped to it so that a single oversized query still runs,
// alone. Every successful Acquire must be paired with Release(keys).
func (c *Controller) Acquire(ctx context.Context, keys int) error {
	if c == nil || keys <= 0 {
		return nil
	}

	if c.limiter != nil {
		if err := c.limiter.WaitN(ctx, min(keys, c.burst)); err != nil {
			return err
		}
	}

	if c.keySem != nil {
		if err := c.keySem.Acquire(ctx, c.weight(keys)); err != nil {
			return err
		}
	}

	c.inFlight.Add(int64(keys))
	return nil
}

// Release returns keys acquired with Acquire.
func (c *Controller) Release(keys int) {
	if c == nil || keys <= 0 {
		return
	}

	if c.keySem != nil {
		c.keySem.Release(c.weight(keys))
	}
	c.inFlight.Add(-int64(keys))
}

// InFlight returns the number of keys currently admitted.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// MaxInFlightKeys returns the configured cap (0 if unlimited).
func (c *Controller) MaxInFlightKeys() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxInFlightKeys
}

func (c *Controller) weight(keys int) int64 {
	return min(int64(keys), c.cfg.MaxInFlightKeys)
}
