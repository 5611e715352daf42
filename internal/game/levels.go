package game

import "fmt"

const baseInventory = 5

// Track names an upgrade track.
type Track string

const (
	TrackRod       Track = "rod"
	TrackBait      Track = "bait"
	TrackBoat      Track = "boat"
	TrackStock     Track = "stock"
	TrackMarketing Track = "marketing"
	TrackIce       Track = "ice"
	TrackLuck      Track = "luck"
)

// Tracks lists the upgrade tracks in display order.
var Tracks = []Track{TrackRod, TrackBait, TrackBoat, TrackStock, TrackMarketing, TrackIce, TrackLuck}

// Levels are the player's upgrade levels. The core only reads them.
type Levels struct {
	Rod       int `json:"rod"`
	Bait      int `json:"bait"`
	Boat      int `json:"boat"`
	Stock     int `json:"stock"`
	Marketing int `json:"marketing"`
	Ice       int `json:"ice"`
	Luck      int `json:"luck"`
}

// StartingLevels are the levels of a fresh save.
func StartingLevels() Levels {
	return Levels{Rod: 1, Bait: 1, Boat: 1, Stock: 1, Marketing: 1}
}

// MaxInventory is the base capacity raised by the stock and boat tracks.
func (l Levels) MaxInventory() int {
	return baseInventory + (l.Stock-1)*3 + (l.Boat-1)*10
}

// Level returns the current level of a track.
func (l Levels) Level(t Track) (int, error) {
	p, err := l.field(t)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// Raise increments a track by one.
func (l *Levels) Raise(t Track) error {
	p, err := l.field(t)
	if err != nil {
		return err
	}
	*p++
	return nil
}

func (l *Levels) field(t Track) (*int, error) {
	switch t {
	case TrackRod:
		return &l.Rod, nil
	case TrackBait:
		return &l.Bait, nil
	case TrackBoat:
		return &l.Boat, nil
	case TrackStock:
		return &l.Stock, nil
	case TrackMarketing:
		return &l.Marketing, nil
	case TrackIce:
		return &l.Ice, nil
	case TrackLuck:
		return &l.Luck, nil
	default:
		return nil, fmt.Errorf("unknown upgrade track %q", string(t))
	}
}
