package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded goose migrations to the database at dsn.
func Migrate(ctx context.Context, dsn string) error {
	config, err := pgx.ParseConnectionString(dsn)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
