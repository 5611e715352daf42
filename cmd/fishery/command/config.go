package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const minTickInterval = 100 * time.Millisecond

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Nats         NatsConfig       `json:"nats"`
	Game         GameConfig       `json:"game"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < minTickInterval {
			el.Add(fmt.Errorf("tick_interval must be at least %s", minTickInterval))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Game.validate())

	return el.Err()
}

func (c *Config) tickInterval() time.Duration {
	// Validate has already rejected anything unparsable.
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

// parseDurations parses each non-empty named duration, reporting every
// failure.
func parseDurations(fields map[string]string) error {
	el := errors.NewErrorList()
	for name, v := range fields {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
			continue
		}
		if d < 0 {
			el.Add(fmt.Errorf("%s must not be negative", name))
		}
	}
	return el.Err()
}

// overrideDuration replaces *dst with v when v is set.
func overrideDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
