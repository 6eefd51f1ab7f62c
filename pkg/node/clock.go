package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parleylab/parley/pkg/bus"
)

// ClockConfig configures a Clock.
type ClockConfig struct {
	// Bus receives the ticks. Required.
	Bus *bus.Bus

	// Topic is the tick topic. Required.
	Topic string

	// Period is the interval between ticks. Required.
	Period time.Duration

	// MaxTicks stops the clock after this many ticks; zero runs until
	// the context is cancelled.
	MaxTicks int

	// Logger receives clock diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
}

// Clock periodically publishes ticks that drive agent decision cycles.
type Clock struct {
	cfg ClockConfig
	log *slog.Logger
}

// NewClock validates cfg and creates a Clock.
func NewClock(cfg ClockConfig) (*Clock, error) {
	if cfg.Bus == nil {
		return nil, errors.New("node: clock bus is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("node: clock topic is required")
	}
	if cfg.Period <= 0 {
		return nil, fmt.Errorf("node: clock period must be positive, got %v", cfg.Period)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Clock{cfg: cfg, log: logger}, nil
}

// Run publishes ticks until ctx is cancelled, the bus closes, or
// MaxTicks is reached.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.Period)
	defer ticker.Stop()

	var count int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.cfg.Bus.Publish(c.cfg.Topic, nil); err != nil {
				if errors.Is(err, bus.ErrClosed) {
					return nil
				}
				return fmt.Errorf("node: publish tick: %w", err)
			}
			count++
			if c.cfg.MaxTicks > 0 && count >= c.cfg.MaxTicks {
				c.log.Info("clock finished", "ticks", count)
				return nil
			}
		}
	}
}
