package command

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishery/internal/commands"
	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/session"
	"github.com/pixil98/go-fishery/internal/storage"
	"github.com/pixil98/go-fishery/internal/world"
)

type StorageConfig struct {
	Species  AssetConfig[*game.Species]     `json:"species"`
	Commands AssetConfig[*commands.Command] `json:"commands"`
	Sessions SaveConfig                     `json:"sessions"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Species.Validate("species"))
	el.Add(c.Commands.Validate("commands"))
	el.Add(c.Sessions.validate())
	return el.Err()
}

// BuildCatalog loads every species asset and checks the catalog can always
// land a fish.
func (c *StorageConfig) BuildCatalog() (*game.Catalog, error) {
	store, err := c.Species.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating species store: %w", err)
	}

	catalog, err := game.NewCatalog(store.GetAll())
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return catalog, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

type SaveDriver string

const (
	SaveDriverFile   SaveDriver = "file"
	SaveDriverSQLite SaveDriver = "sqlite"
)

// SaveConfig says where session and world snapshots live. The file driver
// keeps a directory per kind under Path; sqlite keeps a table per kind in
// the database at Path.
type SaveConfig struct {
	Driver SaveDriver `json:"driver"`
	Path   string     `json:"path"`
}

func (c *SaveConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Driver {
	case SaveDriverFile, SaveDriverSQLite:
	default:
		el.Add(fmt.Errorf("sessions: unknown driver %q (want file or sqlite)", c.Driver))
	}
	if c.Path == "" {
		el.Add(fmt.Errorf("sessions: path is required"))
	}

	return el.Err()
}

// SaveStores are the snapshot stores for one run. Close releases whatever
// the driver holds open.
type SaveStores struct {
	Sessions session.Storer
	World    world.Storer
	Close    func() error
}

func (c *SaveConfig) BuildStores(ctx context.Context) (*SaveStores, error) {
	switch c.Driver {
	case SaveDriverSQLite:
		return c.buildSQLiteStores(ctx)
	default:
		return c.buildFileStores()
	}
}

func (c *SaveConfig) buildFileStores() (*SaveStores, error) {
	sessionsPath := filepath.Join(c.Path, "sessions")
	worldPath := filepath.Join(c.Path, "world")
	for _, p := range []string{sessionsPath, worldPath} {
		if err := os.MkdirAll(p, 0755); err != nil {
			return nil, fmt.Errorf("creating save directory: %w", err)
		}
	}

	sessions, err := storage.NewFileStore[*session.Snapshot](sessionsPath)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}
	w, err := storage.NewFileStore[*world.Snapshot](worldPath)
	if err != nil {
		return nil, fmt.Errorf("creating world store: %w", err)
	}

	return &SaveStores{
		Sessions: sessions,
		World:    w,
		Close:    func() error { return nil },
	}, nil
}

func (c *SaveConfig) buildSQLiteStores(ctx context.Context) (*SaveStores, error) {
	db, err := storage.OpenSQLite(c.Path)
	if err != nil {
		return nil, err
	}

	stores, err := sqliteStores(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return stores, nil
}

func sqliteStores(ctx context.Context, db *sql.DB) (*SaveStores, error) {
	sessions, err := storage.NewSQLiteStore[*session.Snapshot](ctx, db, "sessions")
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}
	w, err := storage.NewSQLiteStore[*world.Snapshot](ctx, db, "world")
	if err != nil {
		return nil, fmt.Errorf("creating world store: %w", err)
	}

	return &SaveStores{
		Sessions: sessions,
		World:    w,
		Close:    db.Close,
	}, nil
}
