package player

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-fishery/internal/display"
	"github.com/pixil98/go-fishery/internal/encounter"
	"github.com/pixil98/go-fishery/internal/events"
)

// Render turns an event into what the player reads. Events that only echo
// a command the player just typed render as "".
func Render(e events.Event) string {
	var lines []string

	switch e.Kind {
	case events.KindBite:
		lines = append(lines, "Something tugs hard at your line! Reel now!")

	case events.KindCatch:
		if e.Rare {
			lines = append(lines, fmt.Sprintf("*** A %s catch! You landed: %s! ***", e.Rarity, e.SpeciesName))
		} else {
			lines = append(lines, fmt.Sprintf("You landed a %s.", e.SpeciesName))
		}
		if e.Streak > 1 {
			lines = append(lines, fmt.Sprintf("That's %d in a row.", e.Streak))
		}

	case events.KindFail:
		lines = append(lines, failMessage(e))

	case events.KindCustomer:
		lines = append(lines, "A customer wanders into your shop. Sales pay more while they browse.")
	}

	for _, id := range e.Completed {
		lines = append(lines, fmt.Sprintf("Mission %s complete! Claim your reward.", id))
	}

	return display.Wrap(strings.Join(lines, "\n"))
}

func failMessage(e events.Event) string {
	fish := "fish"
	if e.SpeciesName != "" {
		fish = e.SpeciesName
	}

	switch encounter.FailReason(e.Reason) {
	case encounter.FailPremature:
		return "You pulled too early and scared the fish away."
	case encounter.FailMissed:
		return "The fish got away before you struck."
	case encounter.FailLost:
		return fmt.Sprintf("Your line goes slack. The %s got away.", fish)
	case encounter.FailTimeout:
		return fmt.Sprintf("The %s wore you out and slipped the hook.", fish)
	case encounter.FailAborted:
		return "You wind in your line."
	default:
		return fmt.Sprintf("You let the %s go: %s.", fish, e.Reason)
	}
}
