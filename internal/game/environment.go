package game

import "fmt"

// Weather is the current sky condition supplied by the world clock.
type Weather string

const (
	WeatherSunny  Weather = "SUNNY"
	WeatherRainy  Weather = "RAINY"
	WeatherStormy Weather = "STORMY"
)

// Wet reports whether it is raining or storming.
func (w Weather) Wet() bool {
	return w == WeatherRainy || w == WeatherStormy
}

func (w Weather) Validate() error {
	switch w {
	case WeatherSunny, WeatherRainy, WeatherStormy:
		return nil
	default:
		return fmt.Errorf("invalid weather %q", string(w))
	}
}

// TimeOfDay is the current phase of the in-game day.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "MORNING"
	TimeAfternoon TimeOfDay = "AFTERNOON"
	TimeNight     TimeOfDay = "NIGHT"
)

// Next returns the phase that follows t and whether that phase starts a new day.
func (t TimeOfDay) Next() (TimeOfDay, bool) {
	switch t {
	case TimeMorning:
		return TimeAfternoon, false
	case TimeAfternoon:
		return TimeNight, false
	default:
		return TimeMorning, true
	}
}

func (t TimeOfDay) Validate() error {
	switch t {
	case TimeMorning, TimeAfternoon, TimeNight:
		return nil
	default:
		return fmt.Errorf("invalid time of day %q", string(t))
	}
}

// Location is a fishing spot.
type Location string

const (
	LocationCoast Location = "COAST"
	LocationRiver Location = "RIVER"
	LocationOcean Location = "OCEAN"
)

// Locations lists every fishing spot the catalog must cover.
var Locations = []Location{LocationCoast, LocationRiver, LocationOcean}

func (l Location) Validate() error {
	for _, loc := range Locations {
		if l == loc {
			return nil
		}
	}
	return fmt.Errorf("invalid location %q", string(l))
}

// Conditions is the environmental snapshot published by the world clock.
type Conditions struct {
	Day       int       `json:"day"`
	Weather   Weather   `json:"weather"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// EncounterContext is the read-only input to a single encounter.
type EncounterContext struct {
	Location  Location
	Weather   Weather
	TimeOfDay TimeOfDay
	Rod       int
	Bait      int
	Luck      int
}

// ReelLevel is the rod level with bait added on top.
func (c EncounterContext) ReelLevel() int {
	return c.Rod + c.Bait
}
