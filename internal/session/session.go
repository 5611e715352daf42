// Package session holds everything one player does in the game: the
// encounter in flight, the catch in hand, the day's objectives, and the
// host-side wallet and upgrades.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/encounter"
	"github.com/pixil98/go-fishery/internal/events"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/inventory"
	"github.com/pixil98/go-fishery/internal/loot"
	"github.com/pixil98/go-fishery/internal/pricing"
	"github.com/pixil98/go-fishery/internal/progress"
)

// Environment is the world as a session reads it.
type Environment interface {
	Conditions() game.Conditions
	Market() game.MarketTrend
}

// CustomerConfig paces the shop's walk-in customer.
type CustomerConfig struct {
	CheckInterval time.Duration
	Stay          time.Duration
	BaseChance    float64
	PerMarketing  float64
}

func DefaultCustomerConfig() CustomerConfig {
	return CustomerConfig{
		CheckInterval: time.Second,
		Stay:          15 * time.Second,
		BaseChance:    0.1,
		PerMarketing:  0.01,
	}
}

// View is a point-in-time summary of a session.
type View struct {
	Id              string
	Encounter       encounter.Status
	Streak          int
	Wallet          int
	Levels          game.Levels
	Location        game.Location
	Held            int
	Capacity        int
	Donated         []string
	CustomerPresent bool
	Day             int
}

// Session is one player's game. All operations are safe to call from the
// connection goroutine while encounter timers fire on their own.
type Session struct {
	id      string
	clock   clock.Clock
	catalog *game.Catalog
	env     Environment
	rng     loot.Rand
	sink    events.Sink

	encounterCfg encounter.Config
	saleCfg      inventory.SaleConfig
	customerCfg  CustomerConfig

	machine *encounter.Machine
	inv     *inventory.Inventory
	tracker *progress.Tracker

	mu            sync.Mutex
	levels        game.Levels
	location      game.Location
	streak        int
	wallet        int
	donated       []string
	day           int
	customerUntil time.Time
	nextCustomer  time.Time
}

// New creates a fresh session at the coast with starting levels.
func New(id string, clk clock.Clock, catalog *game.Catalog, env Environment, rng loot.Rand, opts ...SessionOpt) *Session {
	s := &Session{
		id:           id,
		clock:        clk,
		catalog:      catalog,
		env:          env,
		rng:          rng,
		sink:         events.Discard,
		encounterCfg: encounter.DefaultConfig(),
		saleCfg:      inventory.DefaultSaleConfig(),
		customerCfg:  DefaultCustomerConfig(),
		levels:       game.StartingLevels(),
		location:     game.LocationCoast,
		day:          env.Conditions().Day,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.inv = inventory.NewInventory(clk, rng, s.levels.MaxInventory(), inventory.WithSaleConfig(s.saleCfg))
	s.tracker = progress.NewTracker()
	s.machine = encounter.NewMachine(clk, loot.NewResolver(catalog, rng), rng, s.onOutcome,
		encounter.WithConfig(s.encounterCfg),
		encounter.WithStartGate(s.inv.CheckCapacity),
		encounter.WithHookFunc(func() {
			s.sink.Emit(events.Bite(s.id, s.clock.Now()))
		}),
	)
	s.nextCustomer = clk.Now().Add(s.customerCfg.CheckInterval)

	return s
}

func (s *Session) Id() string {
	return s.id
}

// Cast starts an encounter at the current location under the current
// conditions.
func (s *Session) Cast() error {
	c := s.env.Conditions()

	s.mu.Lock()
	ctx := game.EncounterContext{
		Location:  s.location,
		Weather:   c.Weather,
		TimeOfDay: c.TimeOfDay,
		Rod:       s.levels.Rod,
		Bait:      s.levels.Bait,
		Luck:      s.levels.Luck,
	}
	s.mu.Unlock()

	return s.machine.Start(ctx)
}

// Reel is one player input to the encounter in flight.
func (s *Session) Reel() error {
	return s.machine.Interact()
}

// Abort tears down any encounter in flight.
func (s *Session) Abort() {
	s.machine.Abort()
}

func (s *Session) onOutcome(o encounter.Outcome) {
	now := s.clock.Now()

	if !o.Success {
		s.resetStreak()
		s.sink.Emit(events.Fail(s.id, now, string(o.Reason), o.Species))
		return
	}

	s.mu.Lock()
	s.streak++
	streak := s.streak
	s.mu.Unlock()

	f := game.NewCaughtFish(o.Species, game.StreakQuality(streak))
	if err := s.inv.Add(f); err != nil {
		slog.Warn("dropping catch", "session", s.id, "species", f.SpeciesId, "error", err)
		s.resetStreak()
		s.sink.Emit(events.Fail(s.id, now, "inventory full", o.Species))
		return
	}

	done := s.tracker.RecordCatch(f.SpeciesId)
	s.sink.Emit(events.Catch(s.id, now, f, streak, done))
}

func (s *Session) resetStreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streak = 0
}

// Inventory lists held fish with their status as of now.
func (s *Session) Inventory() []*game.CaughtFish {
	return s.inv.Items()
}

// List puts a caught fish up for sale and returns when it will be ready.
func (s *Session) List(instanceId string) (time.Time, error) {
	s.mu.Lock()
	marketing := s.levels.Marketing
	s.mu.Unlock()

	return s.inv.List(instanceId, marketing)
}

// Collect sells a ready fish and credits the payout.
func (s *Session) Collect(instanceId string) (int, error) {
	f, err := s.inv.Collect(instanceId)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()

	s.mu.Lock()
	amount := pricing.Payout(f, pricing.Context{
		IceLevel:        s.levels.Ice,
		Market:          s.env.Market(),
		CustomerPresent: now.Before(s.customerUntil),
		DonatedCount:    len(s.donated),
		CatalogSize:     s.catalog.Len(),
	})
	s.wallet += amount
	s.mu.Unlock()

	done := s.tracker.RecordEarn(amount)
	s.sink.Emit(events.Payout(s.id, now, f, amount, done))
	return amount, nil
}

// Discard throws a fish back, whatever its status.
func (s *Session) Discard(instanceId string) error {
	_, err := s.inv.Discard(instanceId)
	return err
}

// Donate gives a fish to the aquarium. Each species can be donated once.
func (s *Session) Donate(instanceId string) error {
	f, err := s.donate(instanceId)
	if err != nil {
		return err
	}

	s.sink.Emit(events.Donate(s.id, s.clock.Now(), f))
	return nil
}

func (s *Session) donate(instanceId string) (*game.CaughtFish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.inv.Get(instanceId)
	if err != nil {
		return nil, err
	}
	if slices.Contains(s.donated, f.SpeciesId) {
		return nil, fmt.Errorf("%w: %s is already on display", game.ErrInvalidOperation, f.SpeciesId)
	}
	if _, err := s.inv.Discard(instanceId); err != nil {
		return nil, err
	}
	s.donated = append(s.donated, f.SpeciesId)
	return f, nil
}

func (s *Session) Objectives() []progress.Objective {
	return s.tracker.Objectives()
}

// Claim pays out a completed objective into the wallet.
func (s *Session) Claim(objectiveId string) (int, error) {
	reward, err := s.tracker.Claim(objectiveId)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.wallet += reward
	s.mu.Unlock()

	s.sink.Emit(events.Claim(s.id, s.clock.Now(), objectiveId, reward))
	return reward, nil
}

// Upgrade buys one level on a track and returns what it cost.
func (s *Session) Upgrade(t game.Track) (int, error) {
	cost, ok := UpgradeCosts[t]
	if !ok {
		return 0, fmt.Errorf("%w: unknown upgrade track %q", game.ErrInvalidOperation, string(t))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !Unlocked(s.levels, t) {
		p := prerequisites[t]
		return 0, fmt.Errorf("%w: %s needs %s above level %d", game.ErrInvalidOperation, t, p.track, p.above)
	}
	if s.wallet < cost {
		return 0, fmt.Errorf("%w: %s costs %d, wallet holds %d", game.ErrInvalidOperation, t, cost, s.wallet)
	}
	if err := s.levels.Raise(t); err != nil {
		return 0, fmt.Errorf("%w: %w", game.ErrInvalidOperation, err)
	}
	s.wallet -= cost
	s.inv.SetCapacity(s.levels.MaxInventory())
	return cost, nil
}

// Travel moves to another fishing spot. Not allowed mid-encounter.
func (s *Session) Travel(loc game.Location) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", game.ErrInvalidOperation, err)
	}
	if st := s.machine.Status().State; st != encounter.StateIdle {
		return fmt.Errorf("%w: cannot travel while %s", game.ErrRejectedTransition, st)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
	return nil
}

// NewDay installs the day's objectives and resets the catch streak.
func (s *Session) NewDay(day int, objectives []progress.Objective) error {
	if err := s.tracker.Replace(objectives); err != nil {
		return fmt.Errorf("replacing objectives: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.day = day
	s.streak = 0
	return nil
}

// Tick runs the shop's customer cycle. A check happens every interval while
// no customer is present; a late tick runs every check it missed.
func (s *Session) Tick(ctx context.Context) error {
	now := s.clock.Now()
	cfg := s.customerCfg
	if cfg.CheckInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	arrived := false
	for !now.Before(s.nextCustomer) {
		at := s.nextCustomer
		s.nextCustomer = at.Add(cfg.CheckInterval)
		if at.Before(s.customerUntil) {
			continue
		}
		chance := cfg.BaseChance + float64(s.levels.Marketing)*cfg.PerMarketing
		if s.rng.Float64() < chance {
			s.customerUntil = at.Add(cfg.Stay)
			arrived = true
		}
	}
	s.mu.Unlock()

	if arrived {
		slog.DebugContext(ctx, "customer arrived", "session", s.id)
		s.sink.Emit(events.Customer(s.id, now))
	}
	return nil
}

// CustomerPresent reports whether a customer is in the shop now.
func (s *Session) CustomerPresent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now().Before(s.customerUntil)
}

func (s *Session) View() View {
	st := s.machine.Status()

	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Id:              s.id,
		Encounter:       st,
		Streak:          s.streak,
		Wallet:          s.wallet,
		Levels:          s.levels,
		Location:        s.location,
		Held:            s.inv.Len(),
		Capacity:        s.inv.Capacity(),
		Donated:         slices.Clone(s.donated),
		CustomerPresent: s.clock.Now().Before(s.customerUntil),
		Day:             s.day,
	}
}

// Snapshot captures the persisted state. An encounter in flight is not
// part of it.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Snapshot{
		Inventory:  s.inv.Stored(),
		Objectives: s.tracker.Objectives(),
		Streak:     s.streak,
		Day:        s.day,
		Wallet:     s.wallet,
		Levels:     s.levels,
		Donated:    slices.Clone(s.donated),
		Location:   s.location,
	}
}

// Restore loads a snapshot into an idle session. Every species it names
// must still be in the catalog.
func (s *Session) Restore(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("validating snapshot: %w", err)
	}
	if st := s.machine.Status().State; st != encounter.StateIdle {
		return fmt.Errorf("%w: cannot restore while %s", game.ErrRejectedTransition, st)
	}

	items := make([]*game.CaughtFish, 0, len(snap.Inventory))
	for _, f := range snap.Inventory {
		sp := s.catalog.Get(f.SpeciesId)
		if sp == nil {
			return fmt.Errorf("%w: snapshot holds unknown species %q", game.ErrInvalidOperation, f.SpeciesId)
		}
		c := f.Clone()
		c.Species = sp
		items = append(items, c)
	}
	for _, id := range snap.Donated {
		if s.catalog.Get(id) == nil {
			return fmt.Errorf("%w: snapshot donates unknown species %q", game.ErrInvalidOperation, id)
		}
	}

	if err := s.inv.Restore(items); err != nil {
		return fmt.Errorf("restoring inventory: %w", err)
	}
	if err := s.tracker.Replace(snap.Objectives); err != nil {
		return fmt.Errorf("restoring objectives: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.streak = snap.Streak
	s.day = snap.Day
	s.wallet = snap.Wallet
	s.levels = snap.Levels
	s.donated = slices.Clone(snap.Donated)
	s.location = snap.Location
	s.inv.SetCapacity(s.levels.MaxInventory())
	return nil
}
