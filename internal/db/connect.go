package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	pgdriver "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Config selects the PostgreSQL instance holding the knowledge base.
// Debug attaches a verbose query hook, useful when tuning vector search.
type Config struct {
	DSN          string
	Debug        bool
	AppName      string
	MaxOpenConns int
}

// Database wraps the bun handle shared by ingestion, search, and the
// migration tooling.
type Database struct {
	bun *bun.DB
}

func NewDatabase(cfg Config) (*Database, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres DSN is required")
	}
	opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN)}
	if cfg.AppName != "" {
		opts = append(opts, pgdriver.WithApplicationName(cfg.AppName))
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	handle := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		handle.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Database{bun: handle}, nil
}

// Bun exposes the underlying handle for repositories and migrations.
func (d *Database) Bun() *bun.DB {
	return d.bun
}

func (d *Database) Close() error {
	return d.bun.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	return d.bun.PingContext(ctx)
}
