package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-fishery/internal/game"
)

const (
	defaultUpgradesMessage = `Wallet: {{ coins .Wallet }}
{{- range .Levels }}
 {{ printf "%-10s" .Track }} level {{ .Level }}  {{ if .Unlocked }}next {{ coins .Cost }}{{ else }}locked{{ end }}
{{- end }}`
	defaultUpgradeMessage = "Your {{ .Track }} is now level {{ .Level }}. That cost {{ coins .Cost }}."
)

// UpgradeHandlerFactory creates handlers that list or buy upgrades.
// Without a track input the handler lists every track.
type UpgradeHandlerFactory struct {
	catalog *game.Catalog
}

func (f *UpgradeHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message", "list_message")
}

func (f *UpgradeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		track := game.Track(strings.ToLower(cmdCtx.String("track")))
		if track == "" {
			data := statusRef(cmdCtx.Session.View(), cmdCtx.Conditions, cmdCtx.Market, f.catalog)
			return reply(cmdCtx, "list_message", defaultUpgradesMessage, data)
		}

		cost, err := cmdCtx.Session.Upgrade(track)
		if err != nil {
			return gameError(err)
		}
		level, _ := cmdCtx.Session.View().Levels.Level(track)
		return reply(cmdCtx, "message", defaultUpgradeMessage, LevelRef{
			Track: string(track),
			Level: level,
			Cost:  cost,
		})
	}, nil
}
