package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zipshipping/internal/rate"
)

const schema = `
CREATE TABLE IF NOT EXISTS shipping_method_settings (
	instance_id INTEGER NOT NULL,
	key         TEXT    NOT NULL,
	value       TEXT    NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (instance_id, key)
)`

// Postgres stores settings as one row per key.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the settings table if needed.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.Exec(ctx, schema)
	return err
}

func (p *Postgres) Get(ctx context.Context, instanceID int) (rate.Settings, error) {
	rows, err := p.db.Query(ctx, `SELECT key, value FROM shipping_method_settings WHERE instance_id = $1`, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := rate.Settings{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		s[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, notFound(instanceID)
	}
	return s, nil
}

// Save replaces every key of the instance in one transaction.
func (p *Postgres) Save(ctx context.Context, instanceID int, s rate.Settings) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM shipping_method_settings WHERE instance_id = $1`, instanceID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for k, v := range s {
		batch.Queue(`
			INSERT INTO shipping_method_settings (instance_id, key, value, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (instance_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`, instanceID, k, v)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
