package commands

import (
	"context"
)

// QuitHandlerFactory creates handlers that end the connection. The session
// is saved when the connection closes.
type QuitHandlerFactory struct{}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		cmdCtx.Quit = true
		return reply(cmdCtx, "message", "Your catch is safe. See you on the water!", nil)
	}, nil
}
