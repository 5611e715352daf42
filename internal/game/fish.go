package game

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatus is the sale lifecycle of a caught fish.
type SaleStatus string

const (
	StatusCaught SaleStatus = "CAUGHT"
	StatusListed SaleStatus = "LISTED"
	// StatusReady is never stored; a listed fish reads as ready once its
	// deadline has passed.
	StatusReady SaleStatus = "READY"
)

// CaughtFish is one landed instance of a Species.
type CaughtFish struct {
	InstanceId string     `json:"instance_id"`
	SpeciesId  string     `json:"species_id"`
	Status     SaleStatus `json:"status"`
	ReadyAt    *time.Time `json:"ready_at,omitempty"`
	// Quality is the streak multiplier fixed at the moment of catch.
	Quality float64 `json:"quality"`

	Species *Species `json:"-"`
}

// NewCaughtFish creates a fresh instance in the CAUGHT state.
func NewCaughtFish(sp *Species, quality float64) *CaughtFish {
	return &CaughtFish{
		InstanceId: uuid.New().String(),
		SpeciesId:  sp.Id,
		Status:     StatusCaught,
		Quality:    quality,
		Species:    sp,
	}
}

// StatusAt returns the observable status at now.
func (f *CaughtFish) StatusAt(now time.Time) SaleStatus {
	if f.Status == StatusListed && f.ReadyAt != nil && !now.Before(*f.ReadyAt) {
		return StatusReady
	}
	return f.Status
}

// Clone returns a copy that shares only the immutable species.
func (f *CaughtFish) Clone() *CaughtFish {
	c := *f
	if f.ReadyAt != nil {
		at := *f.ReadyAt
		c.ReadyAt = &at
	}
	return &c
}

// StreakQuality is the quality multiplier for a catch that brings the
// consecutive-catch streak to streak. A zero streak is neutral.
func StreakQuality(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	return 1 + float64(streak)*0.05
}

// MarketTrend names the species currently selling high and low.
type MarketTrend struct {
	HotId  string `json:"hot_id"`
	ColdId string `json:"cold_id"`
}
