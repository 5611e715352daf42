package commands

import (
	"strings"
	"time"

	"github.com/pixil98/go-fishery/internal/display"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/progress"
	"github.com/pixil98/go-fishery/internal/session"
)

// Stable template-facing types
// These decouple command templates from internal game structs and hold
// plain strings so sprig functions apply to them directly.

// InputContext is used for config templates that reference inputs.
type InputContext struct {
	Inputs map[string]any // Parsed input values keyed by input name
}

// FishRef is the template-facing view of a held fish.
type FishRef struct {
	Index     int // 1-based position in the hold
	Id        string
	Name      string
	Rarity    string
	Status    string
	Quality   float64
	Price     int
	Remaining string // time until a listed fish is ready, empty otherwise
}

func fishRef(i int, f *game.CaughtFish, now time.Time) FishRef {
	ref := FishRef{
		Index:   i + 1,
		Id:      f.InstanceId,
		Name:    f.SpeciesId,
		Status:  strings.ToLower(string(f.StatusAt(now))),
		Quality: f.Quality,
	}
	if f.Species != nil {
		ref.Name = f.Species.Name
		ref.Rarity = f.Species.Rarity.String()
		ref.Price = f.Species.Price
	}
	if f.StatusAt(now) == game.StatusListed && f.ReadyAt != nil {
		ref.Remaining = display.Seconds(f.ReadyAt.Sub(now))
	}
	return ref
}

func fishRefs(items []*game.CaughtFish, now time.Time) []FishRef {
	refs := make([]FishRef, 0, len(items))
	for i, f := range items {
		refs = append(refs, fishRef(i, f, now))
	}
	return refs
}

// ObjectiveRef is the template-facing view of a daily objective.
type ObjectiveRef struct {
	Id        string
	Goal      string
	Progress  int
	Target    int
	Reward    int
	Completed bool
	Claimed   bool
}

func objectiveRefs(objectives []progress.Objective, catalog *game.Catalog) []ObjectiveRef {
	refs := make([]ObjectiveRef, 0, len(objectives))
	for _, o := range objectives {
		refs = append(refs, ObjectiveRef{
			Id:        o.Id,
			Goal:      describeObjective(o, catalog),
			Progress:  o.Progress,
			Target:    o.Target,
			Reward:    o.Reward,
			Completed: o.Completed,
			Claimed:   o.Claimed,
		})
	}
	return refs
}

func describeObjective(o progress.Objective, catalog *game.Catalog) string {
	switch {
	case o.Kind == progress.KindEarn:
		return "Earn " + display.Coins(o.Target)
	case o.TargetId == "":
		return "Catch any fish"
	default:
		name := o.TargetId
		if sp := catalog.Get(o.TargetId); sp != nil {
			name = sp.Name
		}
		return "Catch a " + name
	}
}

// LevelRef is one upgrade track as shown to the player.
type LevelRef struct {
	Track    string
	Level    int
	Cost     int
	Unlocked bool
}

// StatusRef is the template-facing view of a session and its surroundings.
type StatusRef struct {
	Day       int
	Weather   string
	TimeOfDay string
	Location  string
	Encounter string
	Struggle  float64 // 0-1
	Streak    int
	Wallet    int
	Held      int
	Capacity  int
	Donated   int
	Species   int
	Customer  bool
	Hot       string
	Cold      string
	Levels    []LevelRef
}

func statusRef(v session.View, c game.Conditions, m game.MarketTrend, catalog *game.Catalog) StatusRef {
	ref := StatusRef{
		Day:       c.Day,
		Weather:   strings.ToLower(string(c.Weather)),
		TimeOfDay: strings.ToLower(string(c.TimeOfDay)),
		Location:  strings.ToLower(string(v.Location)),
		Encounter: v.Encounter.State.String(),
		Struggle:  v.Encounter.Struggle / 100,
		Streak:    v.Streak,
		Wallet:    v.Wallet,
		Held:      v.Held,
		Capacity:  v.Capacity,
		Donated:   len(v.Donated),
		Species:   catalog.Len(),
		Customer:  v.CustomerPresent,
		Hot:       speciesName(catalog, m.HotId),
		Cold:      speciesName(catalog, m.ColdId),
	}
	for _, t := range game.Tracks {
		lvl, _ := v.Levels.Level(t)
		ref.Levels = append(ref.Levels, LevelRef{
			Track:    string(t),
			Level:    lvl,
			Cost:     session.UpgradeCosts[t],
			Unlocked: session.Unlocked(v.Levels, t),
		})
	}
	return ref
}

func speciesName(catalog *game.Catalog, id string) string {
	if sp := catalog.Get(id); sp != nil {
		return sp.Name
	}
	return id
}
