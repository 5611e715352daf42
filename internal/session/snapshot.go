package session

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/progress"
)

// Snapshot is the persisted shape of a session. Catalog content is only
// referenced by species id.
type Snapshot struct {
	Inventory  []*game.CaughtFish   `json:"inventory"`
	Objectives []progress.Objective `json:"objectives"`
	Streak     int                  `json:"streak"`

	// Day is the day the objectives were issued for.
	Day      int           `json:"day"`
	Wallet   int           `json:"wallet"`
	Levels   game.Levels   `json:"levels"`
	Donated  []string      `json:"donated,omitempty"`
	Location game.Location `json:"location"`
}

func (s *Snapshot) Validate() error {
	el := errors.NewErrorList()

	if s.Streak < 0 {
		el.Add(fmt.Errorf("streak cannot be negative"))
	}
	if s.Wallet < 0 {
		el.Add(fmt.Errorf("wallet cannot be negative"))
	}
	if s.Day < 1 {
		el.Add(fmt.Errorf("day must be at least 1"))
	}
	el.Add(s.Location.Validate())

	for _, t := range game.Tracks {
		lvl, _ := s.Levels.Level(t)
		if lvl < 0 {
			el.Add(fmt.Errorf("%s level cannot be negative", t))
		}
	}
	if s.Levels.Stock < 1 || s.Levels.Boat < 1 {
		el.Add(fmt.Errorf("stock and boat levels start at 1"))
	}

	for i, f := range s.Inventory {
		switch {
		case f == nil:
			el.Add(fmt.Errorf("inventory entry %d is empty", i))
		case f.Quality <= 0:
			el.Add(fmt.Errorf("fish %s has non-positive quality %v", f.InstanceId, f.Quality))
		}
	}

	seen := map[string]bool{}
	for _, id := range s.Donated {
		if seen[id] {
			el.Add(fmt.Errorf("species %s donated twice", id))
		}
		seen[id] = true
	}

	for _, o := range s.Objectives {
		el.Add(o.Validate())
	}

	return el.Err()
}
