package progress

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Kind is what an objective counts.
type Kind string

const (
	KindCatch Kind = "CATCH"
	KindEarn  Kind = "EARN"
)

// Objective is one daily mission.
type Objective struct {
	Id   string `json:"id"`
	Kind Kind   `json:"kind"`
	// TargetId limits a CATCH objective to one species. Empty counts any catch.
	TargetId  string `json:"target_id,omitempty"`
	Target    int    `json:"target"`
	Progress  int    `json:"progress"`
	Reward    int    `json:"reward"`
	Completed bool   `json:"completed"`
	Claimed   bool   `json:"claimed"`
}

func (o Objective) Validate() error {
	el := errors.NewErrorList()

	if o.Id == "" {
		el.Add(fmt.Errorf("objective id is required"))
	}
	switch o.Kind {
	case KindCatch:
	case KindEarn:
		if o.TargetId != "" {
			el.Add(fmt.Errorf("earn objective %s cannot name a species", o.Id))
		}
	default:
		el.Add(fmt.Errorf("objective %s has unknown kind %q", o.Id, o.Kind))
	}
	if o.Target <= 0 {
		el.Add(fmt.Errorf("objective %s target must be positive", o.Id))
	}
	if o.Reward < 0 {
		el.Add(fmt.Errorf("objective %s reward cannot be negative", o.Id))
	}
	if o.Claimed && !o.Completed {
		el.Add(fmt.Errorf("objective %s is claimed but not completed", o.Id))
	}

	return el.Err()
}

func (o *Objective) advance(n int) bool {
	if o.Completed || n <= 0 {
		return false
	}
	o.Progress += n
	if o.Progress >= o.Target {
		o.Completed = true
		return true
	}
	return false
}
