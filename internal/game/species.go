package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// Gate is a situational requirement that keeps a species out of the tier
// pool unless conditions match.
type Gate string

const (
	GateNone       Gate = ""
	GateWetWeather Gate = "wet_weather"
	GateStorm      Gate = "storm"
	GateNight      Gate = "night"
)

// Allows reports whether the gate is open under the given conditions.
func (g Gate) Allows(w Weather, t TimeOfDay) bool {
	switch g {
	case GateWetWeather:
		return w.Wet()
	case GateStorm:
		return w == WeatherStormy
	case GateNight:
		return t == TimeNight
	default:
		return true
	}
}

func (g Gate) Validate() error {
	switch g {
	case GateNone, GateWetWeather, GateStorm, GateNight:
		return nil
	default:
		return fmt.Errorf("invalid gate %q", string(g))
	}
}

// Species is catalog data for one kind of fish, loaded from asset files.
// Species are never mutated after the catalog is built.
type Species struct {
	// Id is populated from the asset identifier when the catalog is built.
	Id string `json:"-" yaml:"-"`

	Name       string     `json:"name" yaml:"name"`
	Price      int        `json:"price" yaml:"price"`
	Rarity     Rarity     `json:"rarity" yaml:"rarity"`
	Difficulty int        `json:"difficulty" yaml:"difficulty"` // 1-100, lower is harder
	Locations  []Location `json:"locations" yaml:"locations"`
	Gate       Gate       `json:"gate,omitempty" yaml:"gate,omitempty"`

	// Order fixes the catalog position, which breaks ties deterministically.
	Order int `json:"order" yaml:"order"`
}

// Validate satisfies storage.ValidatingSpec
func (s *Species) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("species name is required"))
	}
	if s.Price <= 0 {
		el.Add(fmt.Errorf("species price must be positive"))
	}
	if s.Difficulty < 1 || s.Difficulty > 100 {
		el.Add(fmt.Errorf("species difficulty %d must be within 1-100", s.Difficulty))
	}
	if len(s.Locations) == 0 {
		el.Add(fmt.Errorf("species must appear in at least one location"))
	}
	for _, l := range s.Locations {
		el.Add(l.Validate())
	}
	el.Add(s.Gate.Validate())

	return el.Err()
}

// FoundIn reports whether the species can appear at loc.
func (s *Species) FoundIn(loc Location) bool {
	return slices.Contains(s.Locations, loc)
}
