// Package world runs the shared clock every session fishes under: the
// day and its phases, the weather and the market trend.
package world

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
)

// Rand supplies the weather, market and objective draws.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Config holds the pacing of the world.
type Config struct {
	PhaseDuration time.Duration
	MarketMin     time.Duration
	MarketMax     time.Duration
	// WetChance is the chance a new day is not sunny; StormShare is the
	// part of wet days that storm.
	WetChance  float64
	StormShare float64
}

func DefaultConfig() Config {
	return Config{
		PhaseDuration: 2 * time.Minute,
		MarketMin:     5 * time.Minute,
		MarketMax:     8 * time.Minute,
		WetChance:     0.5,
		StormShare:    0.3,
	}
}

// DayFunc is told about each new day after the world has moved into it.
type DayFunc func(ctx context.Context, c game.Conditions)

// World is the environment collaborator for every session. Phases and
// market refreshes are checked on Tick, so a late tick catches up on every
// phase it missed.
type World struct {
	mu sync.RWMutex

	clock   clock.Clock
	catalog *game.Catalog
	rng     Rand
	cfg     Config

	conditions game.Conditions
	phaseEnds  time.Time
	market     game.MarketTrend
	marketEnds time.Time

	dayFuncs []DayFunc
	store    Storer
}

func NewWorld(clk clock.Clock, catalog *game.Catalog, rng Rand, opts ...WorldOpt) *World {
	w := &World{
		clock:   clk,
		catalog: catalog,
		rng:     rng,
		cfg:     DefaultConfig(),
		conditions: game.Conditions{
			Day:       1,
			Weather:   game.WeatherSunny,
			TimeOfDay: game.TimeMorning,
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	now := clk.Now()
	w.phaseEnds = now.Add(w.cfg.PhaseDuration)
	w.market = w.rollMarket()
	w.marketEnds = now.Add(w.marketDelay())

	if w.store != nil {
		w.load()
	}

	return w
}

// OnNewDay registers fn to run whenever a day begins.
func (w *World) OnNewDay(fn DayFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dayFuncs = append(w.dayFuncs, fn)
}

func (w *World) Conditions() game.Conditions {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.conditions
}

func (w *World) Market() game.MarketTrend {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.market
}

// Restore resumes the world at saved conditions and market, restarting
// both cycles from now.
func (w *World) Restore(c game.Conditions, m game.MarketTrend) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	w.conditions = c
	w.market = m
	w.phaseEnds = now.Add(w.cfg.PhaseDuration)
	w.marketEnds = now.Add(w.marketDelay())
}

// Tick advances phases and refreshes the market when they are due.
func (w *World) Tick(ctx context.Context) error {
	w.mu.Lock()
	now := w.clock.Now()

	var newDays []game.Conditions
	for w.cfg.PhaseDuration > 0 && !now.Before(w.phaseEnds) {
		if w.advancePhase() {
			newDays = append(newDays, w.conditions)
		}
		w.phaseEnds = w.phaseEnds.Add(w.cfg.PhaseDuration)
	}

	marketChanged := false
	for w.cfg.MarketMin > 0 && !now.Before(w.marketEnds) {
		w.market = w.rollMarket()
		w.marketEnds = w.marketEnds.Add(w.marketDelay())
		marketChanged = true
	}

	market := w.market
	fns := append([]DayFunc(nil), w.dayFuncs...)
	w.mu.Unlock()

	if marketChanged {
		slog.DebugContext(ctx, "market shifted", "hot", market.HotId, "cold", market.ColdId)
	}
	for _, c := range newDays {
		slog.InfoContext(ctx, "new day", "day", c.Day, "weather", c.Weather)
		for _, fn := range fns {
			fn(ctx, c)
		}
	}
	return nil
}

// advancePhase moves to the next phase and reports whether it began a day.
// Weather is rolled at dawn; later phases clear up.
func (w *World) advancePhase() bool {
	next, newDay := w.conditions.TimeOfDay.Next()
	w.conditions.TimeOfDay = next
	if !newDay {
		w.conditions.Weather = game.WeatherSunny
		return false
	}

	w.conditions.Day++
	w.conditions.Weather = w.rollWeather()
	return true
}

func (w *World) rollWeather() game.Weather {
	if w.rng.Float64() >= w.cfg.WetChance {
		return game.WeatherSunny
	}
	if w.rng.Float64() < w.cfg.StormShare {
		return game.WeatherStormy
	}
	return game.WeatherRainy
}

// rollMarket picks distinct hot and cold species.
func (w *World) rollMarket() game.MarketTrend {
	all := w.catalog.All()
	if len(all) < 2 {
		return game.MarketTrend{}
	}

	hot := w.rng.IntN(len(all))
	cold := w.rng.IntN(len(all) - 1)
	if cold >= hot {
		cold++
	}
	return game.MarketTrend{HotId: all[hot].Id, ColdId: all[cold].Id}
}

func (w *World) marketDelay() time.Duration {
	if w.cfg.MarketMax <= w.cfg.MarketMin {
		return w.cfg.MarketMin
	}
	return w.cfg.MarketMin + time.Duration(w.rng.Float64()*float64(w.cfg.MarketMax-w.cfg.MarketMin))
}
