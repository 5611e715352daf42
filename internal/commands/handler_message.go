package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-fishery/internal/game"
)

// MessageHandlerFactory creates handlers that show fixed text.
// Config:
//   - message (required): template rendered with .Conditions
type MessageHandlerFactory struct{}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]string) error {
	if config["message"] == "" {
		return fmt.Errorf("message is required")
	}
	return validateTemplates(config, "message")
}

func (f *MessageHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		return reply(cmdCtx, "message", "", struct{ Conditions game.Conditions }{cmdCtx.Conditions})
	}, nil
}
