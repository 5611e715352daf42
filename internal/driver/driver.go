package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 250
)

// Manager is advanced once per tick. World cycles and per-session timers
// both hang off this.
type Manager interface {
	Tick(context.Context) error
}

type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			began := time.Now()
			if err := d.Tick(ctx); err != nil {
				return err
			}
			if took := time.Since(began); took > d.tickLength {
				slog.WarnContext(ctx, "tick overran its interval", "took", took, "interval", d.tickLength)
			}
		}
	}
}

// Tick advances the managers in order, stopping at the first failure.
func (d *Driver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("manager %d: %w", i, err)
		}
	}
	return nil
}
