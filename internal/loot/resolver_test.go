package loot

import (
	"math"
	"testing"

	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-testutil"
)

// scriptedRand replays fixed draws so each branch of the table can be forced.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func testCatalog(t *testing.T) *game.Catalog {
	t.Helper()

	coast := []game.Location{game.LocationCoast}
	river := []game.Location{game.LocationRiver}
	ocean := []game.Location{game.LocationOcean}

	c, err := game.NewCatalog(map[string]*game.Species{
		"sardine":       {Name: "Sardine", Price: 10, Rarity: game.RarityCommon, Difficulty: 90, Locations: coast, Order: 1},
		"mackerel":      {Name: "Mackerel", Price: 25, Rarity: game.RarityCommon, Difficulty: 80, Locations: coast, Order: 2},
		"crab":          {Name: "King Crab", Price: 120, Rarity: game.RarityRare, Difficulty: 40, Locations: coast, Order: 3},
		"trout":         {Name: "Trout", Price: 30, Rarity: game.RarityCommon, Difficulty: 70, Locations: river, Order: 4},
		"electric_eel":  {Name: "Electric Eel", Price: 300, Rarity: game.RarityRare, Difficulty: 25, Locations: river, Gate: game.GateWetWeather, Order: 5},
		"golden_carp":   {Name: "Golden Carp", Price: 500, Rarity: game.RarityLegendary, Difficulty: 12, Locations: river, Order: 6},
		"shrimp":        {Name: "Shrimp", Price: 25, Rarity: game.RarityCommon, Difficulty: 80, Locations: ocean, Order: 7},
		"thunder_shark": {Name: "Thunder Shark", Price: 2000, Rarity: game.RarityLegendary, Difficulty: 4, Locations: ocean, Gate: game.GateStorm, Order: 8},
		"anglerfish":    {Name: "Anglerfish", Price: 600, Rarity: game.RarityLegendary, Difficulty: 8, Locations: ocean, Gate: game.GateNight, Order: 9},
		"golden_turtle": {Name: "Ancient Turtle", Price: 5000, Rarity: game.RarityMythic, Difficulty: 3, Locations: []game.Location{game.LocationCoast, game.LocationOcean}, Order: 10},
		"leviathan":     {Name: "Cosmic Leviathan", Price: 10000, Rarity: game.RarityMythic, Difficulty: 1, Locations: []game.Location{game.LocationCoast, game.LocationOcean}, Order: 11},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return c
}

func TestResolver_Resolve(t *testing.T) {
	tests := map[string]struct {
		ctx    game.EncounterContext
		floats []float64
		ints   []int
		exp    string
	}{
		"mythic under chance takes first in catalog order": {
			ctx:    game.EncounterContext{Location: game.LocationOcean, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
			floats: []float64{0.0001},
			exp:    "golden_turtle",
		},
		"mythic draw above chance falls to tier roll": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
			floats: []float64{0.001, 0.5},
			ints:   []int{1},
			exp:    "mackerel",
		},
		"luck raises mythic chance": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning, Luck: 1},
			floats: []float64{0.001},
			exp:    "golden_turtle",
		},
		"storm raises mythic chance": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherStormy, TimeOfDay: game.TimeMorning},
			floats: []float64{0.002},
			exp:    "golden_turtle",
		},
		"mythic draw without mythic at location": {
			ctx:    game.EncounterContext{Location: game.LocationRiver, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
			floats: []float64{0, 0.5},
			exp:    "trout",
		},
		"rare roll": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
			floats: []float64{0.9, 0.96},
			exp:    "crab",
		},
		"score of exactly 95 stays common": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherRainy, TimeOfDay: game.TimeMorning, Rod: 20, Bait: 20},
			floats: []float64{0.9, 0.25},
			exp:    "sardine",
		},
		"score of exactly 160 is rare": {
			ctx:    game.EncounterContext{Location: game.LocationCoast, Weather: game.WeatherStormy, TimeOfDay: game.TimeMorning, Rod: 33, Bait: 32},
			floats: []float64{0.9, 0.375},
			exp:    "crab",
		},
		"gated legendaries fall back to commons": {
			ctx:    game.EncounterContext{Location: game.LocationOcean, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning, Rod: 30, Bait: 30},
			floats: []float64{0.9, 0.75},
			exp:    "shrimp",
		},
		"storm at night opens both gates": {
			ctx:    game.EncounterContext{Location: game.LocationOcean, Weather: game.WeatherStormy, TimeOfDay: game.TimeNight, Rod: 30, Bait: 30},
			floats: []float64{0.9, 0.75},
			ints:   []int{1},
			exp:    "anglerfish",
		},
		"rain opens the eel": {
			ctx:    game.EncounterContext{Location: game.LocationRiver, Weather: game.WeatherRainy, TimeOfDay: game.TimeMorning},
			floats: []float64{0.9, 0.9},
			exp:    "electric_eel",
		},
		"closed gate empties the rare pool": {
			ctx:    game.EncounterContext{Location: game.LocationRiver, Weather: game.WeatherSunny, TimeOfDay: game.TimeMorning},
			floats: []float64{0.9, 0.99},
			exp:    "trout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewResolver(testCatalog(t), &scriptedRand{floats: tt.floats, ints: tt.ints})
			got := r.Resolve(tt.ctx)
			testutil.AssertEqual(t, "species", got.Id, tt.exp)
		})
	}
}

func TestResolver_Deterministic(t *testing.T) {
	catalog := testCatalog(t)
	ctx := game.EncounterContext{Location: game.LocationOcean, Weather: game.WeatherStormy, TimeOfDay: game.TimeNight, Rod: 5, Bait: 3, Luck: 2}

	a := NewResolver(catalog, NewSeededRand(42))
	b := NewResolver(catalog, NewSeededRand(42))
	for i := range 500 {
		ga, gb := a.Resolve(ctx), b.Resolve(ctx)
		if ga.Id != gb.Id {
			t.Fatalf("draw %d diverged: %s != %s", i, ga.Id, gb.Id)
		}
	}
}

func TestResolver_NeverMythicWithoutDraw(t *testing.T) {
	r := NewResolver(testCatalog(t), NewSeededRand(7))
	ctx := game.EncounterContext{Location: game.LocationRiver, Weather: game.WeatherStormy, TimeOfDay: game.TimeNight, Luck: 100}

	for range 1000 {
		if sp := r.Resolve(ctx); sp.Rarity == game.RarityMythic {
			t.Fatalf("mythic %s returned where none can appear", sp.Id)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := map[string]struct {
		score float64
		exp   game.Rarity
	}{
		"zero":            {score: 0, exp: game.RarityCommon},
		"at rare floor":   {score: 95, exp: game.RarityCommon},
		"above rare":      {score: 95.01, exp: game.RarityRare},
		"at legendary":    {score: 160, exp: game.RarityRare},
		"above legendary": {score: 160.5, exp: game.RarityLegendary},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "tier", TierFor(tt.score), tt.exp)
		})
	}
}

func TestMythicChance(t *testing.T) {
	tests := map[string]struct {
		ctx game.EncounterContext
		exp float64
	}{
		"base":         {ctx: game.EncounterContext{Weather: game.WeatherSunny}, exp: 0.0005},
		"rain is base": {ctx: game.EncounterContext{Weather: game.WeatherRainy}, exp: 0.0005},
		"storm":        {ctx: game.EncounterContext{Weather: game.WeatherStormy}, exp: 0.0005 + 0.002},
		"luck":         {ctx: game.EncounterContext{Weather: game.WeatherSunny, Luck: 3}, exp: 0.0005 + 3*0.001},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MythicChance(tt.ctx); math.Abs(got-tt.exp) > 1e-12 {
				t.Errorf("got %v, expected %v", got, tt.exp)
			}
		})
	}
}
