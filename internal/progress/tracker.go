// Package progress keeps the day's objectives in step with catches and
// earnings.
package progress

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/game"
)

// Tracker owns one session's objectives. The reward of a claim is returned
// to the caller; the tracker never holds currency.
type Tracker struct {
	mu         sync.Mutex
	objectives []*Objective
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Replace swaps in a new set of objectives, typically at the start of a day.
func (t *Tracker) Replace(objectives []Objective) error {
	el := errors.NewErrorList()
	seen := make(map[string]bool, len(objectives))
	for _, o := range objectives {
		el.Add(o.Validate())
		if seen[o.Id] {
			el.Add(fmt.Errorf("duplicate objective id %s", o.Id))
		}
		seen[o.Id] = true
	}
	if err := el.Err(); err != nil {
		return fmt.Errorf("%w: %w", game.ErrInvalidOperation, err)
	}

	next := make([]*Objective, 0, len(objectives))
	for _, o := range objectives {
		next = append(next, &o)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.objectives = next
	return nil
}

// RecordCatch advances every open CATCH objective that accepts speciesId.
// It returns the ids of objectives completed by this catch.
func (t *Tracker) RecordCatch(speciesId string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var done []string
	for _, o := range t.objectives {
		if o.Kind != KindCatch || (o.TargetId != "" && o.TargetId != speciesId) {
			continue
		}
		if o.advance(1) {
			done = append(done, o.Id)
		}
	}
	return done
}

// RecordEarn advances every open EARN objective by a payout. It returns the
// ids of objectives completed by this payout.
func (t *Tracker) RecordEarn(amount int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var done []string
	for _, o := range t.objectives {
		if o.Kind != KindEarn {
			continue
		}
		if o.advance(amount) {
			done = append(done, o.Id)
		}
	}
	return done
}

// Claim marks a completed objective claimed and returns its reward. It
// pays at most once.
func (t *Tracker) Claim(id string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.objectives, func(o *Objective) bool { return o.Id == id })
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", game.ErrObjectiveNotFound, id)
	}

	o := t.objectives[i]
	switch {
	case o.Claimed:
		return 0, fmt.Errorf("%w: objective %s already claimed", game.ErrInvalidOperation, id)
	case !o.Completed:
		return 0, fmt.Errorf("%w: objective %s is %d of %d", game.ErrInvalidOperation, id, o.Progress, o.Target)
	}

	o.Claimed = true
	return o.Reward, nil
}

// Objectives returns a copy of the current objectives in order.
func (t *Tracker) Objectives() []Objective {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Objective, 0, len(t.objectives))
	for _, o := range t.objectives {
		out = append(out, *o)
	}
	return out
}
