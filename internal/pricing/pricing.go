// Package pricing turns a collected fish into currency.
package pricing

import (
	"math"

	"github.com/pixil98/go-fishery/internal/game"
)

const (
	icePerLevel      = 0.1
	hotMultiplier    = 1.5
	coldMultiplier   = 0.5
	customerBonus    = 1.5
	collectionWeight = 0.5
)

// Context is everything outside the fish that moves its price.
type Context struct {
	IceLevel        int
	Market          game.MarketTrend
	CustomerPresent bool
	DonatedCount    int
	CatalogSize     int
}

// Payout prices a collected fish. It reads its inputs only and always
// returns a non-negative whole amount.
func Payout(f *game.CaughtFish, pc Context) int {
	v := float64(basePrice(f)) * (1 + float64(pc.IceLevel)*icePerLevel)
	v *= f.Quality

	switch f.SpeciesId {
	case pc.Market.HotId:
		v *= hotMultiplier
	case pc.Market.ColdId:
		v *= coldMultiplier
	}

	if pc.CustomerPresent {
		v *= customerBonus
	}

	v *= 1 + CollectionRatio(pc.DonatedCount, pc.CatalogSize)*collectionWeight

	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v))
}

// CollectionRatio is the donated share of the catalog, clamped to [0,1].
func CollectionRatio(donated, total int) float64 {
	if total <= 0 || donated <= 0 {
		return 0
	}
	return min(float64(donated)/float64(total), 1)
}

func basePrice(f *game.CaughtFish) int {
	if f.Species == nil {
		return 0
	}
	return f.Species.Price
}
