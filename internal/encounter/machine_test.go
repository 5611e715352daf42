package encounter

import (
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-testutil"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type countingResolver struct {
	species *game.Species
	calls   int
}

func (r *countingResolver) Resolve(game.EncounterContext) *game.Species {
	r.calls++
	return r.species
}

type harness struct {
	clock    *clock.Manual
	resolver *countingResolver
	machine  *Machine
	outcomes []Outcome
}

// newHarness builds a machine whose waits and fights always take their
// minimum: 2s wait, 3s reaction, 5s fight, 1s cooldown.
func newHarness(difficulty int, opts ...MachineOpt) *harness {
	h := &harness{
		clock: clock.NewManual(time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)),
		resolver: &countingResolver{species: &game.Species{
			Id: "sardine", Name: "Sardine", Price: 10, Rarity: game.RarityCommon, Difficulty: difficulty,
		}},
	}
	h.machine = NewMachine(h.clock, h.resolver, fixedRand(0), func(o Outcome) {
		h.outcomes = append(h.outcomes, o)
	}, opts...)
	return h
}

var sunnyCoast = game.EncounterContext{
	Location:  game.LocationCoast,
	Weather:   game.WeatherSunny,
	TimeOfDay: game.TimeMorning,
	Rod:       1,
	Bait:      1,
}

func (h *harness) hook(t *testing.T, ctx game.EncounterContext) {
	t.Helper()
	if err := h.machine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(2 * time.Second)
	testutil.AssertEqual(t, "state after wait", h.machine.Status().State, StateHooked)
}

func TestMachine_Start(t *testing.T) {
	tests := map[string]struct {
		setup     func(h *harness)
		gate      func() error
		expErr    error
		expCause  error
		expState  State
		expTimers int
	}{
		"from idle": {
			expState:  StateWaiting,
			expTimers: 1,
		},
		"while waiting": {
			setup: func(h *harness) {
				_ = h.machine.Start(sunnyCoast)
			},
			expErr:    game.ErrRejectedTransition,
			expState:  StateWaiting,
			expTimers: 1,
		},
		"while cooling down": {
			setup: func(h *harness) {
				_ = h.machine.Start(sunnyCoast)
				h.clock.Advance(2 * time.Second)
				_ = h.machine.Interact()
				for h.machine.Status().State == StateFighting {
					_ = h.machine.Interact()
				}
			},
			expErr:    game.ErrRejectedTransition,
			expState:  StateCooldown,
			expTimers: 1,
		},
		"gate refuses": {
			gate:      func() error { return game.ErrCapacityExceeded },
			expErr:    game.ErrRejectedTransition,
			expCause:  game.ErrCapacityExceeded,
			expState:  StateIdle,
			expTimers: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var opts []MachineOpt
			if tt.gate != nil {
				opts = append(opts, WithStartGate(tt.gate))
			}
			h := newHarness(100, opts...)
			if tt.setup != nil {
				tt.setup(h)
			}

			err := h.machine.Start(sunnyCoast)

			if tt.expErr != nil {
				testutil.AssertEqual(t, "error kind", errors.Is(err, tt.expErr), true)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expCause != nil {
				testutil.AssertEqual(t, "error cause", errors.Is(err, tt.expCause), true)
			}
			testutil.AssertEqual(t, "state", h.machine.Status().State, tt.expState)
			testutil.AssertEqual(t, "armed timers", h.clock.Pending(), tt.expTimers)
		})
	}
}

func TestMachine_PrematurePull(t *testing.T) {
	h := newHarness(100)
	if err := h.machine.Start(sunnyCoast); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(time.Second)

	if err := h.machine.Interact(); err != nil {
		t.Fatalf("interact: %v", err)
	}

	testutil.AssertEqual(t, "state", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 0)

	// The cancelled bite must never arrive.
	h.clock.Advance(10 * time.Second)
	testutil.AssertEqual(t, "state later", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
	testutil.AssertEqual(t, "reason", h.outcomes[0].Reason, FailPremature)
	testutil.AssertEqual(t, "resolver calls", h.resolver.calls, 0)
}

func TestMachine_MissedReaction(t *testing.T) {
	h := newHarness(100)
	h.hook(t, sunnyCoast)

	h.clock.Advance(3 * time.Second)

	testutil.AssertEqual(t, "state", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
	testutil.AssertEqual(t, "reason", h.outcomes[0].Reason, FailMissed)
	testutil.AssertEqual(t, "resolver calls", h.resolver.calls, 0)
	testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 0)
}

func TestMachine_ReactionTimerCancelledOnStrike(t *testing.T) {
	// Difficulty 100 never drains, so only a stale reaction timer could end
	// the fight before its backstop.
	h := newHarness(100)
	h.hook(t, sunnyCoast)

	if err := h.machine.Interact(); err != nil {
		t.Fatalf("strike: %v", err)
	}
	testutil.AssertEqual(t, "state", h.machine.Status().State, StateFighting)
	testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 2)
	testutil.AssertEqual(t, "resolver calls", h.resolver.calls, 1)

	h.clock.Advance(4 * time.Second)
	testutil.AssertEqual(t, "state after reaction window", h.machine.Status().State, StateFighting)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 0)

	h.clock.Advance(time.Second)
	testutil.AssertEqual(t, "state after backstop", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "outcomes after backstop", len(h.outcomes), 1)
	testutil.AssertEqual(t, "reason", h.outcomes[0].Reason, FailTimeout)
	testutil.AssertEqual(t, "armed timers after backstop", h.clock.Pending(), 0)
}

func TestMachine_DrainToFailure(t *testing.T) {
	// Difficulty 50 drains (100-50)/25 = 2 per 50ms tick: 30 lasts 15 ticks.
	h := newHarness(50)
	h.hook(t, sunnyCoast)
	if err := h.machine.Interact(); err != nil {
		t.Fatalf("strike: %v", err)
	}
	testutil.AssertEqual(t, "initial struggle", h.machine.Status().Struggle, 30.0)

	h.clock.Advance(700 * time.Millisecond)
	testutil.AssertEqual(t, "state after 14 ticks", h.machine.Status().State, StateFighting)
	testutil.AssertEqual(t, "struggle after 14 ticks", h.machine.Status().Struggle, 2.0)

	h.clock.Advance(50 * time.Millisecond)
	testutil.AssertEqual(t, "state", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
	testutil.AssertEqual(t, "success", h.outcomes[0].Success, false)
	testutil.AssertEqual(t, "reason", h.outcomes[0].Reason, FailLost)
	testutil.AssertEqual(t, "species", h.outcomes[0].Species.Id, "sardine")
	testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 0)
}

func TestMachine_ReelToSuccess(t *testing.T) {
	// Rod 1 + bait 1 reels 2 + 2*1.5 = 5 per input: 14 inputs take 30 to 100.
	h := newHarness(100)
	h.hook(t, sunnyCoast)
	if err := h.machine.Interact(); err != nil {
		t.Fatalf("strike: %v", err)
	}

	for i := range 13 {
		if err := h.machine.Interact(); err != nil {
			t.Fatalf("reel %d: %v", i, err)
		}
	}
	testutil.AssertEqual(t, "state before last reel", h.machine.Status().State, StateFighting)
	testutil.AssertEqual(t, "struggle before last reel", h.machine.Status().Struggle, 95.0)

	if err := h.machine.Interact(); err != nil {
		t.Fatalf("last reel: %v", err)
	}
	testutil.AssertEqual(t, "state", h.machine.Status().State, StateCooldown)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
	testutil.AssertEqual(t, "success", h.outcomes[0].Success, true)
	testutil.AssertEqual(t, "species", h.outcomes[0].Species.Id, "sardine")
	testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 1)

	err := h.machine.Interact()
	testutil.AssertEqual(t, "reel in cooldown rejected", errors.Is(err, game.ErrRejectedTransition), true)

	h.clock.Advance(10 * time.Second)
	testutil.AssertEqual(t, "state after cooldown", h.machine.Status().State, StateIdle)
	testutil.AssertEqual(t, "outcomes after cooldown", len(h.outcomes), 1)
	testutil.AssertEqual(t, "armed timers after cooldown", h.clock.Pending(), 0)
}

func TestMachine_InteractWhileIdle(t *testing.T) {
	h := newHarness(100)
	err := h.machine.Interact()
	testutil.AssertErrorContains(t, err, "cannot reel while idle")
	testutil.AssertEqual(t, "rejected", errors.Is(err, game.ErrRejectedTransition), true)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 0)
}

func TestMachine_Abort(t *testing.T) {
	tests := map[string]struct {
		setup       func(t *testing.T, h *harness)
		expOutcomes int
	}{
		"idle is a no-op": {
			setup:       func(*testing.T, *harness) {},
			expOutcomes: 0,
		},
		"waiting fails": {
			setup: func(t *testing.T, h *harness) {
				_ = h.machine.Start(sunnyCoast)
			},
			expOutcomes: 1,
		},
		"fighting fails": {
			setup: func(t *testing.T, h *harness) {
				h.hook(t, sunnyCoast)
				_ = h.machine.Interact()
			},
			expOutcomes: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(100)
			tt.setup(t, h)

			h.machine.Abort()

			testutil.AssertEqual(t, "state", h.machine.Status().State, StateIdle)
			testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 0)
			testutil.AssertEqual(t, "outcomes", len(h.outcomes), tt.expOutcomes)
			if tt.expOutcomes > 0 {
				testutil.AssertEqual(t, "reason", h.outcomes[0].Reason, FailAborted)
			}
		})
	}
}

func TestMachine_ExactlyOneOutcome(t *testing.T) {
	// Drive many encounters with every mix of input timings and check that
	// each yields one outcome and leaves nothing armed once idle.
	for reels := range 20 {
		for _, strikeDelay := range []time.Duration{0, time.Second, 3 * time.Second} {
			h := newHarness(60)
			if err := h.machine.Start(sunnyCoast); err != nil {
				t.Fatalf("start: %v", err)
			}
			h.clock.Advance(2*time.Second + strikeDelay)
			_ = h.machine.Interact()
			for range reels {
				_ = h.machine.Interact()
				h.clock.Advance(20 * time.Millisecond)
			}
			h.clock.Advance(time.Minute)

			testutil.AssertEqual(t, "state", h.machine.Status().State, StateIdle)
			testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
			testutil.AssertEqual(t, "armed timers", h.clock.Pending(), 0)
		}
	}
}

func TestConfig_DrainPerTick(t *testing.T) {
	cfg := DefaultConfig()
	tests := map[string]struct {
		difficulty int
		weather    game.Weather
		exp        float64
	}{
		"easy":                 {difficulty: 90, weather: game.WeatherSunny, exp: 0.4},
		"legendary":            {difficulty: 10, weather: game.WeatherSunny, exp: 3.6},
		"zero floors at one":   {difficulty: 0, weather: game.WeatherSunny, exp: 3.96},
		"storm lowers":         {difficulty: 30, weather: game.WeatherStormy, exp: 3},
		"storm floors at one":  {difficulty: 3, weather: game.WeatherStormy, exp: 3.96},
		"rain has no penalty":  {difficulty: 50, weather: game.WeatherRainy, exp: 2},
		"maximum never drains": {difficulty: 100, weather: game.WeatherSunny, exp: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "drain", cfg.DrainPerTick(tt.difficulty, tt.weather), tt.exp)
		})
	}
}

func TestMachine_HookFunc(t *testing.T) {
	hooks := 0
	h := newHarness(100, WithHookFunc(func() { hooks++ }))

	if err := h.machine.Start(sunnyCoast); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(time.Second)
	testutil.AssertEqual(t, "hooks before bite", hooks, 0)

	h.clock.Advance(time.Second)
	testutil.AssertEqual(t, "hooks after bite", hooks, 1)

	// A missed reaction is an outcome, not another bite.
	h.clock.Advance(3 * time.Second)
	testutil.AssertEqual(t, "hooks after miss", hooks, 1)
	testutil.AssertEqual(t, "outcomes", len(h.outcomes), 1)
}
