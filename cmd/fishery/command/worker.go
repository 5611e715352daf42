package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/commands"
	"github.com/pixil98/go-fishery/internal/driver"
	"github.com/pixil98/go-fishery/internal/listener"
	"github.com/pixil98/go-fishery/internal/loot"
	"github.com/pixil98/go-fishery/internal/messaging"
	"github.com/pixil98/go-fishery/internal/player"
	"github.com/pixil98/go-fishery/internal/progress"
	"github.com/pixil98/go-fishery/internal/session"
	"github.com/pixil98/go-fishery/internal/world"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	ctx := context.Background()
	clk := clock.Real{}
	seed := cfg.Game.seed()
	slog.Info("building fishery", "seed", seed)

	catalog, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded", "species", catalog.Len())

	stores, err := cfg.Storage.Sessions.BuildStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating save stores: %w", err)
	}

	// Shared world: day, weather and market
	worldRng := loot.NewLockedRand(loot.NewSeededRand(loot.SeedFor(seed, world.SnapshotId)))
	w := world.NewWorld(clk, catalog, worldRng,
		world.WithConfig(cfg.Game.World.build()),
		world.WithStore(stores.World),
	)

	// Event bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Sessions
	objectiveRng := loot.NewLockedRand(loot.NewSeededRand(loot.SeedFor(seed, "objectives")))
	sessions := session.NewManager(clk, catalog, w, stores.Sessions,
		func(day int) []progress.Objective {
			return world.DailyObjectives(day, catalog, objectiveRng)
		},
		session.WithSeed(seed),
		session.WithSessionOpts(
			session.WithSink(messaging.NewEventPublisher(natsServer)),
			session.WithEncounterConfig(cfg.Game.Encounter.build()),
			session.WithSaleConfig(cfg.Game.Sale.build()),
			session.WithCustomerConfig(cfg.Game.Customer.build()),
		),
	)
	w.OnNewDay(sessions.NewDay)

	// Commands
	cmdStore, err := cfg.Storage.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	cmdHandler := commands.NewHandler(cmdStore, catalog, w, clk)
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	// Listeners
	pm := player.NewPlayerManager(sessions, cmdHandler, natsServer)
	cm := listener.NewConnectionManager(pm)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = afterReady(natsServer.Ready(), lw)
	}

	var driverOpts []driver.DriverOpt
	if d := cfg.tickInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	drv := driver.NewDriver([]driver.Manager{w, sessions}, driverOpts...)

	return service.WorkerList{
		"driver":   drv,
		"nats":     natsServer,
		"sessions": serveThenSave(&listeners, sessions, w, stores),
	}, nil
}

// workerFunc lets a plain function run as a service.Worker.
type workerFunc func(ctx context.Context) error

func (f workerFunc) Start(ctx context.Context) error {
	return f(ctx)
}

// afterReady holds w back until ready closes, so no player logs in before
// the event bus can carry their events.
func afterReady(ready <-chan struct{}, w service.Worker) service.Worker {
	return workerFunc(func(ctx context.Context) error {
		select {
		case <-ready:
		case <-ctx.Done():
			return nil
		}
		return w.Start(ctx)
	})
}

// serveThenSave runs the listeners and, once every connection has closed
// its session, saves what is left and releases the stores.
func serveThenSave(listeners service.Worker, sessions *session.Manager, w *world.World, stores *SaveStores) service.Worker {
	return workerFunc(func(ctx context.Context) error {
		el := errors.NewErrorList()
		el.Add(listeners.Start(ctx))
		el.Add(sessions.Start(ctx))
		el.Add(w.Start(ctx))
		el.Add(stores.Close())
		return el.Err()
	})
}
