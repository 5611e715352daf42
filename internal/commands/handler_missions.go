package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-fishery/internal/game"
)

const (
	defaultMissionsMessage = `{{- if not .Objectives -}}
No missions today.
{{- else -}}
Day {{ .Day }} missions:
{{- range .Objectives }}
 [{{ if .Claimed }}claimed{{ else if .Completed }}done{{ else }}{{ .Progress }}/{{ .Target }}{{ end }}] {{ .Goal }}, reward {{ coins .Reward }} ({{ .Id }})
{{- end }}
{{- end }}`
	defaultClaimMessage = "Mission {{ .Id }} complete! You receive {{ coins .Reward }}."
)

// MissionsHandlerFactory creates handlers that list the day's objectives.
type MissionsHandlerFactory struct {
	catalog *game.Catalog
}

func (f *MissionsHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *MissionsHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		data := struct {
			Day        int
			Objectives []ObjectiveRef
		}{
			Day:        cmdCtx.Conditions.Day,
			Objectives: objectiveRefs(cmdCtx.Session.Objectives(), f.catalog),
		}
		return reply(cmdCtx, "message", defaultMissionsMessage, data)
	}, nil
}

// ClaimHandlerFactory creates handlers that collect an objective's reward.
// Config:
//   - objective (optional): the objective id, usually "{{ .Inputs.mission }}"
//   - message (optional): template with .Id and .Reward
type ClaimHandlerFactory struct{}

func (f *ClaimHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "objective", "message")
}

func (f *ClaimHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id := strings.TrimSpace(cmdCtx.Config["objective"])
		if id == "" {
			id = cmdCtx.String("mission")
		}
		if id == "" {
			return NewUserError("Claim which mission?")
		}

		reward, err := cmdCtx.Session.Claim(strings.ToLower(id))
		if err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultClaimMessage, struct {
			Id     string
			Reward int
		}{Id: id, Reward: reward})
	}, nil
}
