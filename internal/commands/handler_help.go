package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-fishery/internal/display"
)

// HelpHandlerFactory answers "help" from the handler's own command table,
// so aliases and suggestions match what Exec accepts.
type HelpHandlerFactory struct {
	handler *Handler
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]string) error {
	return nil
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		name := strings.ToLower(cmdCtx.String("command"))
		if name == "" {
			cmdCtx.Reply(f.overview())
			return nil
		}
		return f.describe(cmdCtx, name)
	}, nil
}

func (f *HelpHandlerFactory) overview() string {
	byCategory := map[string][]string{}
	width := 0
	for _, id := range f.handler.Names() {
		cat := f.handler.compiled[id].cmd.Category
		if cat == "" {
			cat = "other"
		}
		byCategory[cat] = append(byCategory[cat], id)
		width = max(width, len(id))
	}

	cats := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	slices.Sort(cats)

	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, cat := range cats {
		fmt.Fprintf(&sb, "\n%s:", display.Capitalize(cat))
		for _, id := range byCategory[cat] {
			fmt.Fprintf(&sb, "\n  %-*s  %s", width, id, f.handler.compiled[id].cmd.Description)
		}
	}
	sb.WriteString("\nType 'help <command>' for details.")
	return sb.String()
}

func (f *HelpHandlerFactory) describe(cmdCtx *CommandContext, name string) error {
	id := name
	if target, ok := f.handler.aliases[name]; ok {
		id = target
	}
	compiled, ok := f.handler.compiled[id]
	if !ok {
		msg := fmt.Sprintf("Command %q is unknown.", name)
		if guess := f.handler.suggest(name); guess != "" {
			msg += fmt.Sprintf(" Try 'help %s'.", guess)
		}
		return NewUserError(msg)
	}
	cmd := compiled.cmd

	lines := []string{display.Wrap(fmt.Sprintf("%s: %s", id, cmd.Description))}
	if len(cmd.Inputs) > 0 {
		usage := id
		for _, in := range cmd.Inputs {
			arg := in.Name
			if in.Rest {
				arg += "..."
			}
			if in.Required {
				usage += " <" + arg + ">"
			} else {
				usage += " [" + arg + "]"
			}
		}
		lines = append(lines, "Usage: "+usage)
	}
	if len(cmd.Aliases) > 0 {
		lines = append(lines, "Aliases: "+strings.Join(cmd.Aliases, ", "))
	}

	cmdCtx.Reply(strings.Join(lines, "\n"))
	return nil
}
