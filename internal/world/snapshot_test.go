package world

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-testutil"
)

type memStore struct {
	snap  *Snapshot
	saves int
}

func (s *memStore) Save(id string, snap *Snapshot) error {
	s.snap = snap
	s.saves++
	return nil
}

func (s *memStore) Get(id string) *Snapshot {
	if id != SnapshotId {
		return nil
	}
	return s.snap
}

func TestSnapshot_Validate(t *testing.T) {
	tests := map[string]struct {
		snap   Snapshot
		expErr string
	}{
		"valid": {
			snap: Snapshot{
				Conditions: game.Conditions{Day: 3, Weather: game.WeatherStormy, TimeOfDay: game.TimeNight},
				Market:     game.MarketTrend{HotId: "tuna", ColdId: "crab"},
			},
		},
		"day zero": {
			snap:   Snapshot{Conditions: game.Conditions{Day: 0, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning}},
			expErr: "day must be at least 1",
		},
		"same hot and cold": {
			snap: Snapshot{
				Conditions: game.Conditions{Day: 1, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
				Market:     game.MarketTrend{HotId: "tuna", ColdId: "tuna"},
			},
			expErr: "must differ",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestWorld_StoreRoundTrip(t *testing.T) {
	store := &memStore{snap: &Snapshot{
		Conditions: game.Conditions{Day: 4, Weather: game.WeatherRainy, TimeOfDay: game.TimeAfternoon},
		Market:     game.MarketTrend{HotId: "tuna", ColdId: "crab"},
	}}
	clk := clock.NewManual(start)

	w := NewWorld(clk, testCatalog(t), &scriptedRand{}, WithStore(store))

	testutil.AssertEqual(t, "day", w.Conditions().Day, 4)
	testutil.AssertEqual(t, "phase", w.Conditions().TimeOfDay, game.TimeAfternoon)
	testutil.AssertEqual(t, "hot", w.Market().HotId, "tuna")

	clk.Advance(2 * time.Minute)
	_ = w.Tick(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	testutil.AssertEqual(t, "saves", store.saves, 1)
	testutil.AssertEqual(t, "saved phase", store.snap.Conditions.TimeOfDay, game.TimeNight)
	testutil.AssertEqual(t, "saved day", store.snap.Conditions.Day, 4)
}

func TestWorld_StoreUnknownMarket(t *testing.T) {
	store := &memStore{snap: &Snapshot{
		Conditions: game.Conditions{Day: 2, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
		Market:     game.MarketTrend{HotId: "kraken", ColdId: "crab"},
	}}
	// Fresh market: hot 0, cold 0 (bumped), then the reroll: hot 3, cold 3 (bumped).
	rng := &scriptedRand{ints: []int{0, 0, 3, 3}}

	w := NewWorld(clock.NewManual(start), testCatalog(t), rng, WithStore(store))

	testutil.AssertEqual(t, "day", w.Conditions().Day, 2)
	testutil.AssertEqual(t, "hot", w.Market().HotId, "crab")
	testutil.AssertEqual(t, "cold", w.Market().ColdId, "tuna")
}

func TestWorld_StoreInvalidIgnored(t *testing.T) {
	store := &memStore{snap: &Snapshot{Conditions: game.Conditions{Day: 0}}}

	w := NewWorld(clock.NewManual(start), testCatalog(t), &scriptedRand{}, WithStore(store))

	testutil.AssertEqual(t, "day", w.Conditions().Day, 1)
}
