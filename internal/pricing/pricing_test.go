package pricing

import (
	"testing"

	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-testutil"
)

func fish(id string, price int, quality float64) *game.CaughtFish {
	return &game.CaughtFish{
		InstanceId: "instance-" + id,
		SpeciesId:  id,
		Status:     game.StatusListed,
		Quality:    quality,
		Species:    &game.Species{Id: id, Name: id, Price: price, Rarity: game.RarityCommon, Difficulty: 50},
	}
}

func TestPayout(t *testing.T) {
	tests := map[string]struct {
		fish *game.CaughtFish
		ctx  Context
		exp  int
	}{
		"plain": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{CatalogSize: 24},
			exp:  10,
		},
		"every bonus": {
			fish: fish("tuna", 100, 1.1),
			ctx: Context{
				IceLevel:        2,
				Market:          game.MarketTrend{HotId: "tuna", ColdId: "sardine"},
				CustomerPresent: true,
				DonatedCount:    12,
				CatalogSize:     24,
			},
			exp: 371,
		},
		"cold halves": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{Market: game.MarketTrend{HotId: "tuna", ColdId: "sardine"}, CatalogSize: 24},
			exp:  5,
		},
		"cold floors": {
			fish: fish("sardine", 15, 1),
			ctx:  Context{Market: game.MarketTrend{ColdId: "sardine"}, CatalogSize: 24},
			exp:  7,
		},
		"hot wins when both name the fish": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{Market: game.MarketTrend{HotId: "sardine", ColdId: "sardine"}, CatalogSize: 24},
			exp:  15,
		},
		"customer only": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{CustomerPresent: true, CatalogSize: 24},
			exp:  15,
		},
		"full collection": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{DonatedCount: 24, CatalogSize: 24},
			exp:  15,
		},
		"overfull collection is capped": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{DonatedCount: 40, CatalogSize: 24},
			exp:  15,
		},
		"empty catalog has no bonus": {
			fish: fish("sardine", 10, 1),
			ctx:  Context{DonatedCount: 3},
			exp:  10,
		},
		"streak quality": {
			fish: fish("trout", 60, game.StreakQuality(4)),
			ctx:  Context{IceLevel: 1, CatalogSize: 24},
			exp:  79,
		},
		"zero quality": {
			fish: fish("sardine", 10, 0),
			ctx:  Context{CatalogSize: 24},
			exp:  0,
		},
		"negative quality never pays negative": {
			fish: fish("sardine", 10, -1),
			ctx:  Context{CatalogSize: 24},
			exp:  0,
		},
		"unlinked species": {
			fish: &game.CaughtFish{SpeciesId: "sardine", Quality: 1},
			ctx:  Context{CatalogSize: 24},
			exp:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "payout", Payout(tt.fish, tt.ctx), tt.exp)
		})
	}
}

func TestPayout_Pure(t *testing.T) {
	f := fish("tuna", 100, 1.1)
	before := *f
	pc := Context{
		IceLevel:        3,
		Market:          game.MarketTrend{HotId: "tuna", ColdId: "sardine"},
		CustomerPresent: true,
		DonatedCount:    5,
		CatalogSize:     26,
	}

	first := Payout(f, pc)
	second := Payout(f, pc)

	testutil.AssertEqual(t, "repeatable", second, first)
	testutil.AssertEqual(t, "fish unchanged", *f == before, true)
	testutil.AssertEqual(t, "market unchanged", pc.Market, game.MarketTrend{HotId: "tuna", ColdId: "sardine"})
}

func TestCollectionRatio(t *testing.T) {
	tests := map[string]struct {
		donated int
		total   int
		exp     float64
	}{
		"none":     {donated: 0, total: 24, exp: 0},
		"half":     {donated: 12, total: 24, exp: 0.5},
		"all":      {donated: 24, total: 24, exp: 1},
		"too many": {donated: 30, total: 24, exp: 1},
		"no total": {donated: 3, total: 0, exp: 0},
		"negative": {donated: -3, total: 24, exp: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "ratio", CollectionRatio(tt.donated, tt.total), tt.exp)
		})
	}
}
