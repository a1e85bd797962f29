package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/namsral/flag"

	"github.com/daniilsolovey/gnn-news/config"
	_ "github.com/daniilsolovey/gnn-news/docs"
	"github.com/daniilsolovey/gnn-news/internal/app"
)

var (
	flConfig      = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug       = flag.Bool("debug", false, "enable debug mode")
	flDatabaseURL = flag.String("database-url", "", "postgres connection URL, overrides [Database] (DATABASE_URL)")
	flBackend     = flag.String("backend", "", "store backend: memory or postgres, overrides [Store] (BACKEND)")
	lg            *slog.Logger
)

// @title GNN News API
// @version 1.0
// @description News portal content API: articles, categories, authors, comments, images and push subscriptions
// @host localhost:3000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(configPath(*flConfig))
	exitOnError(err)

	if *flDatabaseURL != "" {
		exitOnError(cfg.ApplyDatabaseURL(*flDatabaseURL))
	}
	if *flBackend != "" {
		cfg.Store.Backend = *flBackend
		exitOnError(cfg.Validate())
	}

	ctx := context.Background()
	service, err := app.New(ctx, cfg, lg)
	exitOnError(err)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

// configPath returns an empty path when the default config file is absent,
// so the server can start on built-in defaults.
func configPath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == "config.toml" {
		return ""
	}

	return path
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
