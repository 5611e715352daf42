package encounter

import (
	"fmt"
	"sync"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
)

// Resolver picks the species on the line at the moment of the hook.
type Resolver interface {
	Resolve(game.EncounterContext) *game.Species
}

// Rand supplies the uniform draws for wait and fight durations.
type Rand interface {
	Float64() float64
}

// OutcomeFunc receives the result of each encounter. It is called without
// the machine lock held.
type OutcomeFunc func(Outcome)

type timerKey string

const (
	timerWait     timerKey = "wait"
	timerReaction timerKey = "reaction"
	timerDrain    timerKey = "drain"
	timerBackstop timerKey = "backstop"
	timerCooldown timerKey = "cooldown"
)

// Machine drives one encounter at a time through
// idle -> waiting -> hooked -> fighting -> cooldown -> idle.
//
// Every transition bumps a generation counter and stops every armed timer
// before the next state arms its own, so a callback from a state that has
// already been left is dropped.
type Machine struct {
	mu sync.Mutex

	clock    clock.Clock
	resolver Resolver
	rng      Rand
	cfg      Config
	onResult OutcomeFunc
	onHook   func()
	gate     func() error

	state    State
	ctx      game.EncounterContext
	target   *game.Species
	struggle float64
	drain    float64

	gen    uint64
	armed  map[timerKey]clock.Timer
	hooked bool // set when a bite lands, cleared once announced
}

func NewMachine(clk clock.Clock, resolver Resolver, rng Rand, onResult OutcomeFunc, opts ...MachineOpt) *Machine {
	m := &Machine{
		clock:    clk,
		resolver: resolver,
		rng:      rng,
		cfg:      DefaultConfig(),
		onResult: onResult,
		armed:    make(map[timerKey]clock.Timer),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Status returns the current state, struggle and target.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Struggle: m.struggle, Target: m.target}
}

// Start casts the line. It is rejected while another encounter is in flight
// or when the start gate refuses (e.g. a full inventory).
func (m *Machine) Start(ctx game.EncounterContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		return fmt.Errorf("%w: encounter already %s", game.ErrRejectedTransition, m.state)
	}
	if m.gate != nil {
		if err := m.gate(); err != nil {
			return fmt.Errorf("%w: %w", game.ErrRejectedTransition, err)
		}
	}

	m.enter(StateWaiting)
	m.ctx = ctx
	m.arm(timerWait, m.between(m.cfg.WaitMin, m.cfg.WaitMax), m.onBite)
	return nil
}

// Interact handles one player input: a premature pull while waiting, the
// strike while hooked, or a reel while fighting.
func (m *Machine) Interact() error {
	m.mu.Lock()
	out, err := m.interact()
	m.mu.Unlock()

	m.report(out)
	return err
}

// Abort fails any in-flight encounter and returns the machine to idle.
func (m *Machine) Abort() {
	m.mu.Lock()
	var out *Outcome
	switch m.state {
	case StateIdle:
	case StateCooldown:
		m.enter(StateIdle)
	default:
		out = m.fail(FailAborted)
	}
	m.mu.Unlock()

	m.report(out)
}

func (m *Machine) interact() (*Outcome, error) {
	switch m.state {
	case StateWaiting:
		return m.fail(FailPremature), nil

	case StateHooked:
		m.enter(StateFighting)
		m.target = m.resolver.Resolve(m.ctx)
		m.struggle = m.cfg.InitialStruggle
		m.drain = m.cfg.DrainPerTick(m.target.Difficulty, m.ctx.Weather)
		m.arm(timerDrain, m.cfg.DrainInterval, m.onDrain)
		m.arm(timerBackstop, m.between(m.cfg.FightMin, m.cfg.FightMax), func() *Outcome {
			return m.fail(FailTimeout)
		})
		return nil, nil

	case StateFighting:
		m.struggle = min(m.struggle+m.cfg.ReelPower(m.ctx.ReelLevel()), struggleMax)
		if m.struggle >= struggleMax {
			return m.succeed(), nil
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: cannot reel while %s", game.ErrRejectedTransition, m.state)
	}
}

func (m *Machine) onBite() *Outcome {
	m.enter(StateHooked)
	m.hooked = true
	m.arm(timerReaction, m.cfg.ReactionWindow, func() *Outcome {
		return m.fail(FailMissed)
	})
	return nil
}

func (m *Machine) onDrain() *Outcome {
	m.struggle = max(m.struggle-m.drain, struggleMin)
	if m.struggle <= struggleMin {
		return m.fail(FailLost)
	}
	m.arm(timerDrain, m.cfg.DrainInterval, m.onDrain)
	return nil
}

func (m *Machine) succeed() *Outcome {
	out := &Outcome{Success: true, Species: m.target}
	m.enter(StateCooldown)
	m.arm(timerCooldown, m.cfg.Cooldown, func() *Outcome {
		m.enter(StateIdle)
		return nil
	})
	return out
}

func (m *Machine) fail(reason FailReason) *Outcome {
	out := &Outcome{Reason: reason, Species: m.target}
	m.enter(StateIdle)
	return out
}

// enter cancels everything armed by the state being left and moves to next.
func (m *Machine) enter(next State) {
	for k, t := range m.armed {
		t.Stop()
		delete(m.armed, k)
	}
	m.gen++
	m.state = next
	if next == StateIdle || next == StateWaiting {
		m.target = nil
		m.struggle = 0
		m.drain = 0
	}
}

// arm schedules fn under the current generation. fn runs with the lock held
// and is skipped if the machine has transitioned since arming.
func (m *Machine) arm(key timerKey, d time.Duration, fn func() *Outcome) {
	gen := m.gen
	m.armed[key] = m.clock.AfterFunc(d, func() {
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return
		}
		delete(m.armed, key)
		out := fn()
		hooked := m.hooked
		m.hooked = false
		m.mu.Unlock()

		if hooked && m.onHook != nil {
			m.onHook()
		}
		m.report(out)
	})
}

func (m *Machine) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(m.rng.Float64()*float64(hi-lo))
}

func (m *Machine) report(out *Outcome) {
	if out != nil && m.onResult != nil {
		m.onResult(*out)
	}
}
