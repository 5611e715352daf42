package commands

import (
	"context"

	"github.com/pixil98/go-fishery/internal/display"
	"github.com/pixil98/go-fishery/internal/game"
)

const (
	defaultSellMessage    = "You put the {{ .Fish.Name }} on the counter. It should sell in {{ .Remaining }}."
	defaultCollectMessage = "You sell the {{ .Fish.Name }} for {{ coins .Amount }}."
	defaultDiscardMessage = "You toss the {{ .Fish.Name }} back into the water."
	defaultDonateMessage  = "The aquarium gladly accepts your {{ .Fish.Name }}. {{ .Donated }} of {{ .Species }} species on display."
)

// shopData is what the shop handlers render.
type shopData struct {
	Fish      FishRef
	Remaining string
	Amount    int
	Donated   int
	Species   int
}

// SellHandlerFactory creates handlers that list a caught fish for sale.
type SellHandlerFactory struct{}

func (f *SellHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *SellHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		fish, err := pickFish(cmdCtx)
		if err != nil {
			return err
		}
		readyAt, err := cmdCtx.Session.List(fish.Id)
		if err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultSellMessage, shopData{
			Fish:      fish,
			Remaining: display.Seconds(readyAt.Sub(cmdCtx.Now)),
		})
	}, nil
}

// CollectHandlerFactory creates handlers that take the money for a sold fish.
type CollectHandlerFactory struct{}

func (f *CollectHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *CollectHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		fish, err := pickFish(cmdCtx)
		if err != nil {
			return err
		}
		if fish.Status != "ready" {
			return NewUserError("Nobody has bought the " + fish.Name + " yet.")
		}
		amount, err := cmdCtx.Session.Collect(fish.Id)
		if err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultCollectMessage, shopData{Fish: fish, Amount: amount})
	}, nil
}

// DiscardHandlerFactory creates handlers that throw a fish back.
type DiscardHandlerFactory struct{}

func (f *DiscardHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *DiscardHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		fish, err := pickFish(cmdCtx)
		if err != nil {
			return err
		}
		if err := cmdCtx.Session.Discard(fish.Id); err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultDiscardMessage, shopData{Fish: fish})
	}, nil
}

// DonateHandlerFactory creates handlers that give a fish to the aquarium.
type DonateHandlerFactory struct {
	catalog *game.Catalog
}

func (f *DonateHandlerFactory) ValidateConfig(config map[string]string) error {
	return validateTemplates(config, "message")
}

func (f *DonateHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		fish, err := pickFish(cmdCtx)
		if err != nil {
			return err
		}
		if err := cmdCtx.Session.Donate(fish.Id); err != nil {
			return gameError(err)
		}
		return reply(cmdCtx, "message", defaultDonateMessage, shopData{
			Fish:    fish,
			Donated: len(cmdCtx.Session.View().Donated),
			Species: f.catalog.Len(),
		})
	}, nil
}
