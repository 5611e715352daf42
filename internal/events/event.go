// Package events defines what a session tells the outside world.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pixil98/go-fishery/internal/game"
)

type Kind string

const (
	KindBite   Kind = "bite"
	KindCatch  Kind = "catch"
	KindFail   Kind = "fail"
	KindPayout Kind = "payout"
	KindClaim  Kind = "claim"
	KindDonate Kind = "donate"
	// KindCustomer fires when a customer walks into the shop.
	KindCustomer Kind = "customer"
)

// Event is one notification from a session. Only the fields relevant to its
// kind are set.
type Event struct {
	Kind      Kind      `json:"kind"`
	SessionId string    `json:"session_id"`
	At        time.Time `json:"at"`

	InstanceId  string      `json:"instance_id,omitempty"`
	SpeciesId   string      `json:"species_id,omitempty"`
	SpeciesName string      `json:"species_name,omitempty"`
	Rarity      game.Rarity `json:"rarity,omitempty"`
	// Rare marks catches worth celebrating.
	Rare    bool    `json:"rare,omitempty"`
	Quality float64 `json:"quality,omitempty"`
	Streak  int     `json:"streak,omitempty"`

	Reason string `json:"reason,omitempty"`

	Amount      int      `json:"amount,omitempty"`
	ObjectiveId string   `json:"objective_id,omitempty"`
	Completed   []string `json:"completed,omitempty"`
}

func Catch(sessionId string, at time.Time, f *game.CaughtFish, streak int, completed []string) Event {
	e := Event{
		Kind:       KindCatch,
		SessionId:  sessionId,
		At:         at,
		InstanceId: f.InstanceId,
		SpeciesId:  f.SpeciesId,
		Quality:    f.Quality,
		Streak:     streak,
		Completed:  completed,
	}
	if f.Species != nil {
		e.SpeciesName = f.Species.Name
		e.Rarity = f.Species.Rarity
		e.Rare = f.Species.Rarity.Celebrated()
	}
	return e
}

func Fail(sessionId string, at time.Time, reason string, sp *game.Species) Event {
	e := Event{Kind: KindFail, SessionId: sessionId, At: at, Reason: reason}
	if sp != nil {
		e.SpeciesId = sp.Id
		e.SpeciesName = sp.Name
	}
	return e
}

func Payout(sessionId string, at time.Time, f *game.CaughtFish, amount int, completed []string) Event {
	e := Event{
		Kind:       KindPayout,
		SessionId:  sessionId,
		At:         at,
		InstanceId: f.InstanceId,
		SpeciesId:  f.SpeciesId,
		Amount:     amount,
		Completed:  completed,
	}
	if f.Species != nil {
		e.SpeciesName = f.Species.Name
	}
	return e
}

func Claim(sessionId string, at time.Time, objectiveId string, reward int) Event {
	return Event{Kind: KindClaim, SessionId: sessionId, At: at, ObjectiveId: objectiveId, Amount: reward}
}

func Donate(sessionId string, at time.Time, f *game.CaughtFish) Event {
	e := Event{Kind: KindDonate, SessionId: sessionId, At: at, InstanceId: f.InstanceId, SpeciesId: f.SpeciesId}
	if f.Species != nil {
		e.SpeciesName = f.Species.Name
	}
	return e
}

// Bite opens the reaction window; the player has to strike now.
func Bite(sessionId string, at time.Time) Event {
	return Event{Kind: KindBite, SessionId: sessionId, At: at}
}

func Customer(sessionId string, at time.Time) Event {
	return Event{Kind: KindCustomer, SessionId: sessionId, At: at}
}

func (e Event) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s event: %w", e.Kind, err)
	}
	return data, nil
}

// Decode parses an event published by a session.
func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	return e, nil
}
