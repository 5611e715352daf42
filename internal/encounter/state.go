package encounter

import (
	"time"

	"github.com/pixil98/go-fishery/internal/game"
)

// State is a phase of a single fishing attempt.
type State int

const (
	StateIdle State = iota
	StateWaiting
	StateHooked
	StateFighting
	StateCooldown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateHooked:
		return "hooked"
	case StateFighting:
		return "fighting"
	case StateCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// FailReason explains how an encounter ended without a catch.
type FailReason string

const (
	FailPremature FailReason = "premature" // reeled before the bite
	FailMissed    FailReason = "missed"    // reaction window ran out
	FailLost      FailReason = "lost"      // struggle drained to zero
	FailTimeout   FailReason = "timeout"   // fight ran past its backstop
	FailAborted   FailReason = "aborted"   // host tore the encounter down
)

// Outcome is reported exactly once per encounter.
type Outcome struct {
	Success bool
	Species *game.Species
	Reason  FailReason
}

// Status is a point-in-time view of the machine.
type Status struct {
	State    State
	Struggle float64
	Target   *game.Species
}

const (
	struggleMin = 0
	struggleMax = 100
)

// Config holds the timing and balance constants of an encounter.
type Config struct {
	WaitMin        time.Duration
	WaitMax        time.Duration
	ReactionWindow time.Duration
	DrainInterval  time.Duration
	FightMin       time.Duration
	FightMax       time.Duration
	Cooldown       time.Duration

	InitialStruggle float64
	DrainDivisor    float64
	ReelBase        float64
	ReelPerLevel    float64
	// StormPenalty is taken off a species' difficulty while it storms.
	StormPenalty int
}

func DefaultConfig() Config {
	return Config{
		WaitMin:         2 * time.Second,
		WaitMax:         5 * time.Second,
		ReactionWindow:  3 * time.Second,
		DrainInterval:   50 * time.Millisecond,
		FightMin:        5 * time.Second,
		FightMax:        6 * time.Second,
		Cooldown:        time.Second,
		InitialStruggle: 30,
		DrainDivisor:    25,
		ReelBase:        2,
		ReelPerLevel:    1.5,
		StormPenalty:    5,
	}
}

// DrainPerTick is how much struggle a species takes back every drain tick.
func (c Config) DrainPerTick(difficulty int, w game.Weather) float64 {
	if w == game.WeatherStormy {
		difficulty -= c.StormPenalty
	}
	return (100 - float64(max(difficulty, 1))) / c.DrainDivisor
}

// ReelPower is how much struggle one interaction wins.
func (c Config) ReelPower(reelLevel int) float64 {
	return c.ReelBase + float64(reelLevel)*c.ReelPerLevel
}
