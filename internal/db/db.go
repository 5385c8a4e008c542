// Package db opens the Postgres pool that backs the settings store.
package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultApplicationName  = "zipshipping-api"
	DefaultMaxConns         = 5
	DefaultStatementTimeout = 5 * time.Second
)

// Options tunes the pool. Zero values take the defaults above.
type Options struct {
	ApplicationName  string
	MaxConns         int32
	StatementTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ApplicationName == "" {
		o.ApplicationName = DefaultApplicationName
	}
	if o.MaxConns <= 0 {
		o.MaxConns = DefaultMaxConns
	}
	if o.StatementTimeout <= 0 {
		o.StatementTimeout = DefaultStatementTimeout
	}
	return o
}

// ParseConfig builds a pool config without connecting.
func ParseConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	timeout := strconv.FormatInt(opts.StatementTimeout.Milliseconds(), 10)

	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = 0
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	params := cfg.ConnConfig.RuntimeParams
	params["application_name"] = opts.ApplicationName
	params["timezone"] = "UTC"
	// Server-side; may be ignored depending on server configuration
	params["statement_timeout"] = timeout
	params["idle_in_transaction_session_timeout"] = timeout
	return cfg, nil
}

// NewPool opens a lazily connecting pool; callers Ping to verify connectivity.
func NewPool(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := ParseConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}
