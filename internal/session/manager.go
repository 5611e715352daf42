package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/loot"
	"github.com/pixil98/go-fishery/internal/progress"
)

// Storer persists snapshots by session id. Get returns nil when nothing
// has been saved.
type Storer interface {
	Save(string, *Snapshot) error
	Get(string) *Snapshot
}

// ObjectiveFunc issues the objectives for a day.
type ObjectiveFunc func(day int) []progress.Objective

// Manager owns every open session.
type Manager struct {
	clock      clock.Clock
	catalog    *game.Catalog
	env        Environment
	store      Storer
	objectives ObjectiveFunc
	seed       uint64
	opts       []SessionOpt

	mu       sync.Mutex
	sessions map[string]*Session
	// opens numbers each Open and is mixed into that session's seed.
	opens uint64
}

func NewManager(clk clock.Clock, catalog *game.Catalog, env Environment, store Storer, objectives ObjectiveFunc, opts ...ManagerOpt) *Manager {
	m := &Manager{
		clock:      clk,
		catalog:    catalog,
		env:        env,
		store:      store,
		objectives: objectives,
		sessions:   map[string]*Session{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Open starts a session for id, resuming a saved one when present. A
// session left over from an earlier day gets that day's objectives.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		return nil, fmt.Errorf("session %q is already open", id)
	}

	m.opens++
	seed := loot.SeedFor(m.seed, fmt.Sprintf("%s#%d", id, m.opens))
	rng := loot.NewLockedRand(loot.NewSeededRand(seed))
	s := New(id, m.clock, m.catalog, m.env, rng, m.opts...)
	day := m.env.Conditions().Day

	snap := m.store.Get(id)
	if snap != nil {
		if err := s.Restore(snap); err != nil {
			return nil, fmt.Errorf("restoring session %q: %w", id, err)
		}
	}
	if snap == nil || snap.Day != day {
		if err := s.NewDay(day, m.objectives(day)); err != nil {
			return nil, fmt.Errorf("issuing objectives: %w", err)
		}
	}

	m.sessions[id] = s
	slog.InfoContext(ctx, "session opened", "session", id, "resumed", snap != nil)
	return s, nil
}

// Close aborts any encounter in flight, saves the session and forgets it.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %q is not open", id)
	}

	s.Abort()
	if err := m.store.Save(id, s.Snapshot()); err != nil {
		return fmt.Errorf("saving session %q: %w", id, err)
	}

	slog.InfoContext(ctx, "session closed", "session", id)
	return nil
}

// Known reports whether a session has ever been saved under id.
func (m *Manager) Known(id string) bool {
	return m.store.Get(id) != nil
}

func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Tick runs the per-session cycles.
func (m *Manager) Tick(ctx context.Context) error {
	for _, s := range m.open() {
		if err := s.Tick(ctx); err != nil {
			return fmt.Errorf("ticking session %q: %w", s.Id(), err)
		}
	}
	return nil
}

// NewDay hands every open session the objectives for day c.Day.
func (m *Manager) NewDay(ctx context.Context, c game.Conditions) {
	objectives := m.objectives(c.Day)
	for _, s := range m.open() {
		if err := s.NewDay(c.Day, objectives); err != nil {
			slog.ErrorContext(ctx, "starting new day", "session", s.Id(), "error", err)
		}
	}
}

// SaveAll persists every open session.
func (m *Manager) SaveAll(ctx context.Context) error {
	var firstErr error
	for _, s := range m.open() {
		if err := m.store.Save(s.Id(), s.Snapshot()); err != nil {
			slog.ErrorContext(ctx, "saving session", "session", s.Id(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Start waits for shutdown and then saves every open session.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()

	// The run context is gone; logging still wants one.
	return m.SaveAll(context.WithoutCancel(ctx))
}

func (m *Manager) open() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
