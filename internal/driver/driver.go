package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = 250 * time.Millisecond
)

// Ticker is anything advanced once per driver tick.
type Ticker interface {
	Tick(context.Context) error
}

// Driver advances its tickers in order at a fixed interval. It is a
// service worker.
type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) TickLength() time.Duration {
	return d.tickLength
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength, "tickers", len(d.tickers))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "tick failed", "error", err)
				return err
			}
		}
	}
}

// Tick runs every ticker once, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
