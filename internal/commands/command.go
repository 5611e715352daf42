package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Type     InputType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Rest     bool      `json:"rest" yaml:"rest"` // If true, captures all remaining input
}

// Command defines a command loaded from an asset file.
type Command struct {
	Handler     string            `json:"handler" yaml:"handler"`
	Category    string            `json:"category" yaml:"category"`
	Description string            `json:"description" yaml:"description"`
	Aliases     []string          `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Config      map[string]string `json:"config,omitempty" yaml:"config,omitempty"` // Passed to the handler, may contain templates
	Inputs      []InputSpec       `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

func (c *Command) Validate() error {
	el := errors.NewErrorList()

	if c.Handler == "" {
		el.Add(fmt.Errorf("command handler not set"))
	}

	seen := map[string]bool{}
	optional := false
	for i, input := range c.Inputs {
		if input.Name == "" {
			el.Add(fmt.Errorf("input %d: name is required", i))
			continue
		}
		if seen[input.Name] {
			el.Add(fmt.Errorf("input %q: declared twice", input.Name))
		}
		seen[input.Name] = true

		switch input.Type {
		case InputTypeString, InputTypeNumber:
		case "":
			el.Add(fmt.Errorf("input %q: type is required", input.Name))
		default:
			el.Add(fmt.Errorf("input %q: unknown type %q", input.Name, input.Type))
		}

		if input.Rest {
			if i != len(c.Inputs)-1 {
				el.Add(fmt.Errorf("input %q: only the last input can have rest=true", input.Name))
			}
			if input.Type == InputTypeNumber {
				el.Add(fmt.Errorf("input %q: a rest input must be a string", input.Name))
			}
		}

		// Inputs are positional, so a gap before a required one is ambiguous.
		if input.Required && optional {
			el.Add(fmt.Errorf("input %q: required inputs must come before optional ones", input.Name))
		}
		optional = optional || !input.Required
	}

	for _, alias := range c.Aliases {
		if alias == "" || alias != strings.ToLower(alias) || strings.ContainsAny(alias, " \t") {
			el.Add(fmt.Errorf("alias %q must be a single lowercase word", alias))
		}
	}

	return el.Err()
}
