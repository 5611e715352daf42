package commands

import (
	"context"
	"errors"

	"github.com/pixil98/go-fishery/internal/encounter"
	"github.com/pixil98/go-fishery/internal/game"
)

const (
	defaultCastMessage   = "You cast your line into the {{ .Location }} waters. Wait for a bite, then reel."
	defaultStrikeMessage = "You strike! Something is fighting on the line. Keep reeling!"
	defaultReelMessage   = "You reel in. Line {{ percent .Struggle }}."
)

// CastHandlerFactory creates handlers that start an encounter.
// Config:
//   - message (optional): template rendered with a StatusRef
type CastHandlerFactory struct {
	catalog *game.Catalog
}

func (f *CastHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *CastHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		err := cmdCtx.Session.Cast()
		if errors.Is(err, game.ErrCapacityExceeded) {
			return NewUserError("Your hold is full. Sell or discard a fish first.")
		}
		if err != nil {
			return gameError(err)
		}

		data := statusRef(cmdCtx.Session.View(), cmdCtx.Conditions, cmdCtx.Market, f.catalog)
		return reply(cmdCtx, "message", defaultCastMessage, data)
	}, nil
}

// ReelHandlerFactory creates handlers that feed one input to the encounter
// in flight: the strike on a bite, then each reel of the fight.
// Config:
//   - strike_message (optional): rendered when the fight begins
//   - message (optional): rendered after each reel with Struggle as 0-1
type ReelHandlerFactory struct{}

func (f *ReelHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message", "strike_message")
}

func (f *ReelHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		before := cmdCtx.Session.View().Encounter.State
		if before == encounter.StateIdle {
			return NewUserError("Your line isn't in the water. Cast first.")
		}

		if err := cmdCtx.Session.Reel(); err != nil {
			return gameError(err)
		}

		// Anything that ended the encounter is announced by its event.
		st := cmdCtx.Session.View().Encounter
		if st.State != encounter.StateFighting {
			return nil
		}
		data := struct{ Struggle float64 }{Struggle: st.Struggle / 100}
		if before == encounter.StateHooked {
			return reply(cmdCtx, "strike_message", defaultStrikeMessage, data)
		}
		return reply(cmdCtx, "message", defaultReelMessage, data)
	}, nil
}
