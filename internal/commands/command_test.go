package commands

import (
	"testing"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestCommand_Validate(t *testing.T) {
	tests := map[string]struct {
		cmd    Command
		expErr string
	}{
		"no handler": {
			cmd:    Command{Description: "Reel in."},
			expErr: "command handler not set",
		},
		"bare command": {
			cmd: Command{Handler: "reel", Aliases: []string{"r"}},
		},
		"required then optional": {
			cmd: Command{
				Handler: "sell",
				Inputs: []InputSpec{
					{Name: "item", Type: InputTypeNumber, Required: true},
					{Name: "note", Type: InputTypeString, Rest: true},
				},
			},
		},
		"unnamed input": {
			cmd:    Command{Handler: "travel", Inputs: []InputSpec{{Type: InputTypeString}}},
			expErr: "input 0: name is required",
		},
		"untyped input": {
			cmd:    Command{Handler: "travel", Inputs: []InputSpec{{Name: "location"}}},
			expErr: `input "location": type is required`,
		},
		"unknown input type": {
			cmd:    Command{Handler: "sell", Inputs: []InputSpec{{Name: "item", Type: "fish"}}},
			expErr: `input "item": unknown type "fish"`,
		},
		"input declared twice": {
			cmd: Command{
				Handler: "donate",
				Inputs: []InputSpec{
					{Name: "item", Type: InputTypeNumber, Required: true},
					{Name: "item", Type: InputTypeNumber},
				},
			},
			expErr: `input "item": declared twice`,
		},
		"rest input not last": {
			cmd: Command{
				Handler: "claim",
				Inputs: []InputSpec{
					{Name: "mission", Type: InputTypeString, Rest: true},
					{Name: "count", Type: InputTypeNumber},
				},
			},
			expErr: `input "mission": only the last input can have rest=true`,
		},
		"numeric rest input": {
			cmd: Command{
				Handler: "discard",
				Inputs:  []InputSpec{{Name: "items", Type: InputTypeNumber, Rest: true}},
			},
			expErr: `input "items": a rest input must be a string`,
		},
		"required after optional": {
			cmd: Command{
				Handler: "upgrade",
				Inputs: []InputSpec{
					{Name: "track", Type: InputTypeString},
					{Name: "levels", Type: InputTypeNumber, Required: true},
				},
			},
			expErr: `input "levels": required inputs must come before optional ones`,
		},
		"empty alias": {
			cmd:    Command{Handler: "cast", Aliases: []string{""}},
			expErr: `alias "" must be a single lowercase word`,
		},
		"uppercase alias": {
			cmd:    Command{Handler: "cast", Aliases: []string{"C"}},
			expErr: `alias "C" must be a single lowercase word`,
		},
		"alias with a space": {
			cmd:    Command{Handler: "cast", Aliases: []string{"cast off"}},
			expErr: `alias "cast off" must be a single lowercase word`,
		},
		"every problem reported": {
			cmd: Command{
				Aliases: []string{"Bad"},
				Inputs:  []InputSpec{{Name: "x"}},
			},
			expErr: `alias "Bad" must be a single lowercase word`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestCommand_ShippedAssets(t *testing.T) {
	store, err := storage.NewFileStore[*Command]("../../assets/commands")
	if err != nil {
		t.Fatalf("loading commands: %v", err)
	}

	all := store.GetAll()
	for _, id := range []string{"cast", "reel", "sell", "collect", "discard", "donate", "inventory", "travel", "upgrade", "missions", "claim", "status", "help", "about", "quit"} {
		if _, ok := all[id]; !ok {
			t.Errorf("missing command %q", id)
		}
	}

	catalog, err := game.NewCatalog(map[string]*game.Species{
		"sardine": {Name: "Sardine", Price: 10, Rarity: game.RarityCommon, Difficulty: 100, Locations: game.Locations, Order: 1},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	h := NewHandler(store, catalog, &fakeEnv{}, clock.Real{})
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling shipped commands: %v", err)
	}
}
