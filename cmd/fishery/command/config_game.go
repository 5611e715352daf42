package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/encounter"
	"github.com/pixil98/go-fishery/internal/inventory"
	"github.com/pixil98/go-fishery/internal/session"
	"github.com/pixil98/go-fishery/internal/world"
)

// GameConfig tunes pacing. Every field is optional; unset fields keep the
// defaults.
type GameConfig struct {
	// Seed fixes every random draw when non-zero.
	Seed      uint64          `json:"seed"`
	Encounter EncounterConfig `json:"encounter"`
	Sale      SaleConfig      `json:"sale"`
	Customer  CustomerConfig  `json:"customer"`
	World     WorldConfig     `json:"world"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Encounter.validate())
	el.Add(c.Sale.validate())
	el.Add(c.Customer.validate())
	el.Add(c.World.validate())
	return el.Err()
}

// seed returns the configured seed, or one drawn from the wall clock.
func (c *GameConfig) seed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

type EncounterConfig struct {
	WaitMin        string `json:"wait_min"`
	WaitMax        string `json:"wait_max"`
	ReactionWindow string `json:"reaction_window"`
	DrainInterval  string `json:"drain_interval"`
	FightMin       string `json:"fight_min"`
	FightMax       string `json:"fight_max"`
	Cooldown       string `json:"cooldown"`
}

func (c *EncounterConfig) validate() error {
	err := parseDurations(map[string]string{
		"encounter.wait_min":        c.WaitMin,
		"encounter.wait_max":        c.WaitMax,
		"encounter.reaction_window": c.ReactionWindow,
		"encounter.drain_interval":  c.DrainInterval,
		"encounter.fight_min":       c.FightMin,
		"encounter.fight_max":       c.FightMax,
		"encounter.cooldown":        c.Cooldown,
	})
	if err != nil {
		return err
	}

	cfg := c.build()
	el := errors.NewErrorList()
	if cfg.WaitMax < cfg.WaitMin {
		el.Add(fmt.Errorf("encounter.wait_max must not be below wait_min"))
	}
	if cfg.FightMax < cfg.FightMin {
		el.Add(fmt.Errorf("encounter.fight_max must not be below fight_min"))
	}
	if cfg.DrainInterval <= 0 {
		el.Add(fmt.Errorf("encounter.drain_interval must be positive"))
	}
	return el.Err()
}

func (c *EncounterConfig) build() encounter.Config {
	cfg := encounter.DefaultConfig()
	overrideDuration(&cfg.WaitMin, c.WaitMin)
	overrideDuration(&cfg.WaitMax, c.WaitMax)
	overrideDuration(&cfg.ReactionWindow, c.ReactionWindow)
	overrideDuration(&cfg.DrainInterval, c.DrainInterval)
	overrideDuration(&cfg.FightMin, c.FightMin)
	overrideDuration(&cfg.FightMax, c.FightMax)
	overrideDuration(&cfg.Cooldown, c.Cooldown)
	return cfg
}

type SaleConfig struct {
	Min   string `json:"sale_min"`
	Max   string `json:"sale_max"`
	Floor string `json:"sale_floor"`
}

func (c *SaleConfig) validate() error {
	err := parseDurations(map[string]string{
		"sale.sale_min":   c.Min,
		"sale.sale_max":   c.Max,
		"sale.sale_floor": c.Floor,
	})
	if err != nil {
		return err
	}

	if cfg := c.build(); cfg.Max < cfg.Min {
		return fmt.Errorf("sale.sale_max must not be below sale_min")
	}
	return nil
}

func (c *SaleConfig) build() inventory.SaleConfig {
	cfg := inventory.DefaultSaleConfig()
	overrideDuration(&cfg.Min, c.Min)
	overrideDuration(&cfg.Max, c.Max)
	overrideDuration(&cfg.Floor, c.Floor)
	return cfg
}

type CustomerConfig struct {
	CheckInterval string `json:"check_interval"`
	Stay          string `json:"stay"`
}

func (c *CustomerConfig) validate() error {
	return parseDurations(map[string]string{
		"customer.check_interval": c.CheckInterval,
		"customer.stay":           c.Stay,
	})
}

func (c *CustomerConfig) build() session.CustomerConfig {
	cfg := session.DefaultCustomerConfig()
	overrideDuration(&cfg.CheckInterval, c.CheckInterval)
	overrideDuration(&cfg.Stay, c.Stay)
	return cfg
}

type WorldConfig struct {
	PhaseDuration string `json:"phase_duration"`
	MarketMin     string `json:"market_min"`
	MarketMax     string `json:"market_max"`
}

func (c *WorldConfig) validate() error {
	err := parseDurations(map[string]string{
		"world.phase_duration": c.PhaseDuration,
		"world.market_min":     c.MarketMin,
		"world.market_max":     c.MarketMax,
	})
	if err != nil {
		return err
	}

	if cfg := c.build(); cfg.MarketMax < cfg.MarketMin {
		return fmt.Errorf("world.market_max must not be below market_min")
	}
	return nil
}

func (c *WorldConfig) build() world.Config {
	cfg := world.DefaultConfig()
	overrideDuration(&cfg.PhaseDuration, c.PhaseDuration)
	overrideDuration(&cfg.MarketMin, c.MarketMin)
	overrideDuration(&cfg.MarketMax, c.MarketMax)
	return cfg
}
