package loot

import "github.com/pixil98/go-fishery/internal/game"

const (
	mythicBase     = 0.0005
	mythicPerLuck  = 0.001
	mythicStorm    = 0.002
	scorePerLevel  = 1.5
	scoreRain      = 10
	scoreStorm     = 25
	legendaryFloor = 160
	rareFloor      = 95
)

// Resolver picks the species that bites, using the tiered loot table.
type Resolver struct {
	catalog *game.Catalog
	rng     Rand
}

func NewResolver(catalog *game.Catalog, rng Rand) *Resolver {
	return &Resolver{
		catalog: catalog,
		rng:     rng,
	}
}

// MythicChance is the probability that a mythic short-circuits the tier roll.
func MythicChance(ctx game.EncounterContext) float64 {
	chance := mythicBase + float64(ctx.Luck)*mythicPerLuck
	if ctx.Weather == game.WeatherStormy {
		chance += mythicStorm
	}
	return chance
}

// TierFor maps a roll score to a tier. Mythic is never rolled here.
func TierFor(score float64) game.Rarity {
	switch {
	case score > legendaryFloor:
		return game.RarityLegendary
	case score > rareFloor:
		return game.RarityRare
	default:
		return game.RarityCommon
	}
}

// Resolve returns one species for the encounter. It never returns nil.
func (r *Resolver) Resolve(ctx game.EncounterContext) *game.Species {
	// The mythic draw happens every time so the random sequence does not
	// depend on what the location holds.
	if r.rng.Float64() < MythicChance(ctx) {
		if sp := r.firstMythic(ctx.Location); sp != nil {
			return sp
		}
	}

	tier := TierFor(r.score(ctx))

	var pool []*game.Species
	for _, sp := range r.catalog.All() {
		if sp.Rarity != tier || !sp.FoundIn(ctx.Location) {
			continue
		}
		if !sp.Gate.Allows(ctx.Weather, ctx.TimeOfDay) {
			continue
		}
		pool = append(pool, sp)
	}
	if len(pool) > 0 {
		return pool[r.rng.IntN(len(pool))]
	}

	var commons []*game.Species
	for _, sp := range r.catalog.All() {
		if sp.Rarity == game.RarityCommon && sp.FoundIn(ctx.Location) {
			commons = append(commons, sp)
		}
	}
	if len(commons) == 0 {
		return r.catalog.Default()
	}
	return commons[r.rng.IntN(len(commons))]
}

func (r *Resolver) score(ctx game.EncounterContext) float64 {
	score := r.rng.Float64()*100 + float64(ctx.ReelLevel())*scorePerLevel
	switch ctx.Weather {
	case game.WeatherRainy:
		score += scoreRain
	case game.WeatherStormy:
		score += scoreStorm
	}
	return score
}

func (r *Resolver) firstMythic(loc game.Location) *game.Species {
	for _, sp := range r.catalog.All() {
		if sp.Rarity == game.RarityMythic && sp.FoundIn(loc) {
			return sp
		}
	}
	return nil
}
