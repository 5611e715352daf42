package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/session"
	"github.com/pixil98/go-fishery/internal/storage"
)

// maxSuggestDistance is how many edits an unknown command may be from a
// known one and still be offered as a suggestion.
const maxSuggestDistance = 2

// CommandContext carries one command invocation: the acting session, what
// the player typed, and what the handler wants to say back.
type CommandContext struct {
	Session    *session.Session
	Now        time.Time
	Conditions game.Conditions
	Market     game.MarketTrend
	Inputs     map[string]any    // Parsed input values keyed by input name
	Config     map[string]string // Command config with inputs already expanded

	// Quit is set by a handler that ends the connection.
	Quit bool

	out []string
}

// Reply queues a line of output for the player.
func (c *CommandContext) Reply(msg string) {
	c.out = append(c.out, strings.TrimRight(msg, "\n"))
}

// Output is everything the handler replied, one reply per line.
func (c *CommandContext) Output() string {
	return strings.Join(c.out, "\n")
}

// Number returns a parsed number input, or 0 when it was not given.
func (c *CommandContext) Number(name string) int {
	n, _ := c.Inputs[name].(int)
	return n
}

// String returns a parsed string input, or "" when it was not given.
func (c *CommandContext) String(name string) string {
	s, _ := c.Inputs[name].(string)
	return s
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs for a handler name.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]string) error
	// Create creates a CommandFunc.
	Create() (CommandFunc, error)
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	catalog   *game.Catalog
	env       session.Environment
	clock     clock.Clock
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
	aliases   map[string]string
}

func NewHandler(store storage.Storer[*Command], catalog *game.Catalog, env session.Environment, clk clock.Clock) *Handler {
	h := &Handler{
		store:     store,
		catalog:   catalog,
		env:       env,
		clock:     clk,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
		aliases:   make(map[string]string),
	}

	// Register built-in handlers
	for name, f := range map[string]HandlerFactory{
		"cast":      &CastHandlerFactory{catalog: catalog},
		"reel":      &ReelHandlerFactory{},
		"inventory": &InventoryHandlerFactory{},
		"sell":      &SellHandlerFactory{},
		"collect":   &CollectHandlerFactory{},
		"discard":   &DiscardHandlerFactory{},
		"donate":    &DonateHandlerFactory{catalog: catalog},
		"missions":  &MissionsHandlerFactory{catalog: catalog},
		"claim":     &ClaimHandlerFactory{},
		"travel":    &TravelHandlerFactory{},
		"status":    &StatusHandlerFactory{catalog: catalog},
		"upgrade":   &UpgradeHandlerFactory{catalog: catalog},
		"message":   &MessageHandlerFactory{},
		"help":      &HelpHandlerFactory{handler: h},
		"quit":      &QuitHandlerFactory{},
	} {
		h.factories[name] = f
	}
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	for id, cmd := range h.store.GetAll() {
		for _, alias := range cmd.Aliases {
			alias = strings.ToLower(alias)
			if _, taken := h.compiled[alias]; taken {
				return fmt.Errorf("command %q: alias %q shadows a command", id, alias)
			}
			if other, taken := h.aliases[alias]; taken {
				return fmt.Errorf("command %q: alias %q already used by %q", id, alias, other)
			}
			h.aliases[alias] = id
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	h.compiled[id] = &compiledCommand{
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	return nil
}

// Names lists the compiled command names in order.
func (h *Handler) Names() []string {
	names := make([]string, 0, len(h.compiled))
	for id := range h.compiled {
		names = append(names, id)
	}
	slices.Sort(names)
	return names
}

// Exec runs a command for s and returns the invocation, whose Output holds
// the reply. Mistakes by the player come back as *UserError.
func (h *Handler) Exec(ctx context.Context, s *session.Session, cmdName string, rawArgs ...string) (*CommandContext, error) {
	name := strings.ToLower(cmdName)
	if target, ok := h.aliases[name]; ok {
		name = target
	}
	compiled, ok := h.compiled[name]
	if !ok {
		msg := fmt.Sprintf("Unknown command: %s.", cmdName)
		if guess := h.suggest(name); guess != "" {
			msg += fmt.Sprintf(" Did you mean %q?", guess)
		}
		return nil, NewUserError(msg)
	}

	inputs, err := h.parseInputs(compiled.cmd.Inputs, rawArgs)
	if err != nil {
		return nil, err
	}

	config := make(map[string]string, len(compiled.cmd.Config))
	for k, v := range compiled.cmd.Config {
		expanded, err := expandInputTemplate(v, inputs)
		if err != nil {
			return nil, fmt.Errorf("expanding config %q: %w", k, err)
		}
		config[k] = expanded
	}

	cmdCtx := &CommandContext{
		Session:    s,
		Now:        h.clock.Now(),
		Conditions: h.env.Conditions(),
		Market:     h.env.Market(),
		Inputs:     inputs,
		Config:     config,
	}
	if err := compiled.cmdFunc(ctx, cmdCtx); err != nil {
		return nil, err
	}
	return cmdCtx, nil
}

// suggest returns the closest known command name, or "".
func (h *Handler) suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	candidates := append(h.Names(), sortedKeys(h.aliases)...)
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// parseInputs validates raw string arguments against input specs.
func (h *Handler) parseInputs(specs []InputSpec, rawArgs []string) (map[string]any, error) {
	result := make(map[string]any, len(specs))

	// If no rest input, check we don't have too many args
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d.", len(specs), len(rawArgs)))
	}

	argIndex := 0
	for _, spec := range specs {
		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Missing required input: %s.", spec.Name))
			}
			continue
		}

		var raw string
		if spec.Rest {
			// Consume all remaining args joined with spaces
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		result[spec.Name] = value
	}

	return result, nil
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", inputType)
	}
}

// reply renders the configured template under key, or fallback when the
// command does not override it, and queues the result.
func reply(cmdCtx *CommandContext, key, fallback string, data any) error {
	tmpl := fallback
	if v, ok := cmdCtx.Config[key]; ok && v != "" {
		tmpl = v
	}
	msg, err := Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", key, err)
	}
	cmdCtx.Reply(msg)
	return nil
}

// validateTemplates checks every config value that holds a template.
func validateTemplates(config map[string]string, keys ...string) error {
	for _, k := range keys {
		if v, ok := config[k]; ok {
			if err := checkTemplate(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
