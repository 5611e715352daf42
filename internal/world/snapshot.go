package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/game"
)

// SnapshotId is the record the world is saved under.
const SnapshotId = "world"

// Snapshot is the persisted part of the world. Timers are not saved; both
// cycles restart when the snapshot is loaded.
type Snapshot struct {
	Conditions game.Conditions  `json:"conditions"`
	Market     game.MarketTrend `json:"market"`
}

func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	if s.Conditions.Day < 1 {
		el.Add(fmt.Errorf("day must be at least 1"))
	}
	el.Add(s.Conditions.Weather.Validate())
	el.Add(s.Conditions.TimeOfDay.Validate())
	if s.Market.HotId != "" && s.Market.HotId == s.Market.ColdId {
		el.Add(fmt.Errorf("hot and cold species must differ"))
	}

	return el.Err()
}

// Storer persists the world snapshot.
type Storer interface {
	Save(string, *Snapshot) error
	Get(string) *Snapshot
}

func (w *World) Snapshot() *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return &Snapshot{Conditions: w.conditions, Market: w.market}
}

// load resumes from the stored snapshot when there is one. A market naming
// species the catalog no longer has is rolled again.
func (w *World) load() {
	snap := w.store.Get(SnapshotId)
	if snap == nil {
		return
	}
	if err := snap.Validate(); err != nil {
		slog.Warn("ignoring saved world", "error", err)
		return
	}

	market := snap.Market
	if w.catalog.Get(market.HotId) == nil || w.catalog.Get(market.ColdId) == nil {
		market = w.rollMarket()
	}
	w.Restore(snap.Conditions, market)
	slog.Info("world resumed", "day", snap.Conditions.Day, "time_of_day", snap.Conditions.TimeOfDay)
}

// Start waits for shutdown and then saves the world.
func (w *World) Start(ctx context.Context) error {
	<-ctx.Done()

	if w.store == nil {
		return nil
	}
	if err := w.store.Save(SnapshotId, w.Snapshot()); err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	return nil
}
