// Package app wires the boardsync object graph: config, logger, durable
// store, board, coordinator and, on demand, the REST server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/thenoetrevino/boardsync/internal/board"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/database"
	"github.com/thenoetrevino/boardsync/internal/remote"
	"github.com/thenoetrevino/boardsync/internal/remote/httpstore"
	"github.com/thenoetrevino/boardsync/internal/server"
)

// ErrServeRequiresSQLite is returned by Server when the store is remote
var ErrServeRequiresSQLite = errors.New("serving the API requires the sqlite store driver")

// App holds the resolved application services.
type App struct {
	injector *do.RootScope

	Config      *config.Config
	Logger      *slog.Logger
	Store       remote.FullStore
	Board       *board.Store
	Coordinator *coordinator.Coordinator
	Metrics     *coordinator.Metrics

	db *sql.DB // nil unless the sqlite driver is in use
}

// New builds the object graph from cfg. For the sqlite driver the database
// is opened, migrated and, if configured, seeded with the default columns.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, o.logger)

	registerDependencies(ctx, injector, cfg, o)

	store, err := do.Invoke[remote.FullStore](injector)
	if err != nil {
		closeInjectedDB(injector)
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	a := &App{
		injector:    injector,
		Config:      cfg,
		Logger:      o.logger,
		Store:       store,
		Board:       do.MustInvoke[*board.Store](injector),
		Coordinator: do.MustInvoke[*coordinator.Coordinator](injector),
		Metrics:     do.MustInvoke[*coordinator.Metrics](injector),
	}
	if db, err := do.InvokeNamed[*sql.DB](injector, dbService); err == nil {
		a.db = db
	}
	return a, nil
}

// dbService names the optional sqlite connection in the container
const dbService = "sqlite"

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, o *appConfig) {
	logger := o.logger

	do.ProvideNamed(injector, dbService, func(_ do.Injector) (*sql.DB, error) {
		if cfg.Store.Driver != config.DriverSQLite || o.store != nil {
			return nil, errors.New("sqlite driver not in use")
		}
		db, err := database.InitDB(ctx, cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if cfg.Store.SeedDefaults {
			if _, err := database.SeedDefaultColumns(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to seed default columns: %w", err)
			}
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (remote.FullStore, error) {
		if o.store != nil {
			return o.store, nil
		}
		switch cfg.Store.Driver {
		case config.DriverSQLite:
			db, err := do.InvokeNamed[*sql.DB](i, dbService)
			if err != nil {
				return nil, err
			}
			return database.NewRepository(db), nil
		case config.DriverHTTP:
			return httpstore.New(cfg.Remote, logger), nil
		default:
			return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
		}
	})

	do.Provide(injector, func(_ do.Injector) (*board.Store, error) {
		return board.NewStore(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*coordinator.Metrics, error) {
		return coordinator.NewMetrics(), nil
	})

	do.Provide(injector, func(i do.Injector) (*coordinator.Coordinator, error) {
		return coordinator.New(
			do.MustInvoke[remote.FullStore](i),
			do.MustInvoke[*board.Store](i),
			coordinator.WithLogger(logger),
			coordinator.WithMetrics(do.MustInvoke[*coordinator.Metrics](i)),
			coordinator.WithMaxConcurrentWrites(cfg.Sync.MaxConcurrentWrites),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (http.Handler, error) {
		store := do.MustInvoke[remote.FullStore](i)
		return server.NewRouter(server.NewHandler(store), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*server.Server, error) {
		if cfg.Store.Driver != config.DriverSQLite && o.store == nil {
			return nil, ErrServeRequiresSQLite
		}
		return server.New(cfg.Server, do.MustInvoke[http.Handler](i), logger), nil
	})
}

// Server resolves the REST server over the local store.
func (a *App) Server() (*server.Server, error) {
	return do.Invoke[*server.Server](a.injector)
}

// DB returns the sqlite connection, or nil when the store is remote.
func (a *App) DB() *sql.DB {
	return a.db
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// closeInjectedDB closes a connection opened before a later provider failed.
func closeInjectedDB(injector *do.RootScope) {
	if db, err := do.InvokeNamed[*sql.DB](injector, dbService); err == nil {
		_ = db.Close()
	}
}
