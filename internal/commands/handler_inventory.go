package commands

import (
	"context"
)

const defaultInventoryMessage = `{{- if not .Fish -}}
Your hold is empty.
{{- else -}}
Hold {{ len .Fish }}/{{ .Capacity }}:
{{- range .Fish }}
{{ printf "%2d" .Index }}. {{ .Name }} ({{ .Rarity }}, quality x{{ printf "%.2f" .Quality }}) {{ .Status }}{{ if .Remaining }}, ready in {{ .Remaining }}{{ end }}
{{- end }}
{{- end }}`

// InventoryHandlerFactory creates handlers that list the hold.
// Config:
//   - message (optional): template with .Fish ([]FishRef) and .Capacity
type InventoryHandlerFactory struct{}

func (f *InventoryHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *InventoryHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		data := struct {
			Fish     []FishRef
			Capacity int
		}{
			Fish:     fishRefs(cmdCtx.Session.Inventory(), cmdCtx.Now),
			Capacity: cmdCtx.Session.View().Capacity,
		}
		return reply(cmdCtx, "message", defaultInventoryMessage, data)
	}, nil
}

// pickFish resolves the 1-based "item" input against the hold.
func pickFish(cmdCtx *CommandContext) (FishRef, error) {
	items := cmdCtx.Session.Inventory()
	n := cmdCtx.Number("item")
	if n < 1 || n > len(items) {
		return FishRef{}, NewUserError("You have no fish with that number. Check your inventory.")
	}
	return fishRef(n-1, items[n-1], cmdCtx.Now), nil
}
