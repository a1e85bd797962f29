package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/gnn-news/config"
	"github.com/daniilsolovey/gnn-news/internal/db"
	"github.com/daniilsolovey/gnn-news/internal/memdb"
	"github.com/daniilsolovey/gnn-news/internal/newsportal"
	"github.com/daniilsolovey/gnn-news/internal/rest"
	"github.com/daniilsolovey/gnn-news/internal/rpc"
)

const rpcPath = "/rpc"

type App struct {
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  config.Config
	Manager *newsportal.Manager

	closeStore func() error
}

// OpenStore connects the configured backend. The postgres schema is migrated
// before the store is returned.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (newsportal.Store, func() error, error) {
	if cfg.Store.Backend != config.BackendPostgres {
		return memdb.New(), func() error { return nil }, nil
	}

	dbConnect := pg.Connect(&cfg.Database)
	if cfg.Store.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger))
	}

	repo := db.New(dbConnect)
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := db.Migrate(ctx, cfg.DatabaseURL()); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return repo, repo.Close, nil
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	manager := newsportal.NewNewsManager(store)
	if err := manager.SeedDefaults(ctx); err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("seed default categories and authors: %w", err)
	}

	vapidKey := cfg.Push.VAPIDPublicKey
	if vapidKey == "" {
		if vapidKey, err = GenerateVAPIDPublicKey(); err != nil {
			_ = closeStore()
			return nil, err
		}
		logger.Info("generated VAPID key pair", "publicKey", vapidKey)
	}

	handler := rest.NewNewsHandler(manager, logger, vapidKey)
	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		Logger:     logger,
		Echo:       e,
		Config:     cfg,
		Manager:    manager,
		closeStore: closeStore,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "starting server", "addr", a.Config.Addr(), "backend", a.Config.Store.Backend)
	err := a.Echo.Start(a.Config.Addr())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return errors.Join(err, a.closeStore())
}
