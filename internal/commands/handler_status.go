package commands

import (
	"context"

	"github.com/pixil98/go-fishery/internal/game"
)

const defaultStatusMessage = `Day {{ .Day }}, {{ .TimeOfDay }}, {{ .Weather }}. You are at the {{ .Location }}.
Wallet: {{ coins .Wallet }}   Streak: {{ .Streak }}   Hold: {{ .Held }}/{{ .Capacity }}
Aquarium: {{ .Donated }}/{{ .Species }} species
{{- if .Hot }}
Market: {{ .Hot }} is in demand, {{ .Cold }} is not.
{{- end }}
{{- if .Customer }}
A customer is browsing the shop.
{{- end }}
{{- if ne .Encounter "idle" }}
Your line is {{ .Encounter }}.
{{- end }}`

// StatusHandlerFactory creates handlers that summarise the session.
type StatusHandlerFactory struct {
	catalog *game.Catalog
}

func (f *StatusHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *StatusHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		data := statusRef(cmdCtx.Session.View(), cmdCtx.Conditions, cmdCtx.Market, f.catalog)
		return reply(cmdCtx, "message", defaultStatusMessage, data)
	}, nil
}
