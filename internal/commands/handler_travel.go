package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-fishery/internal/game"
)

const defaultTravelMessage = "You make your way to the {{ .Location }}."

// TravelHandlerFactory creates handlers that move to another fishing spot.
type TravelHandlerFactory struct{}

func (f *TravelHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *TravelHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		loc := game.Location(strings.ToUpper(cmdCtx.String("location")))
		if loc.Validate() != nil {
			names := make([]string, 0, len(game.Locations))
			for _, l := range game.Locations {
				names = append(names, strings.ToLower(string(l)))
			}
			return NewUserError("You can travel to: " + strings.Join(names, ", ") + ".")
		}

		if err := cmdCtx.Session.Travel(loc); err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultTravelMessage, struct{ Location string }{
			Location: strings.ToLower(string(loc)),
		})
	}, nil
}
