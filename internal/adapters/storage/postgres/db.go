package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS animals (
	id             UUID PRIMARY KEY,
	key            TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL UNIQUE,
	category       TEXT NOT NULL DEFAULT 'wild'
	               CHECK (category IN ('wild', 'farm', 'birds', 'insects')),
	habitat        TEXT NOT NULL DEFAULT '',
	facts          TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	image_asset_id TEXT NOT NULL DEFAULT '',
	audio_url      TEXT NOT NULL DEFAULT '',
	audio_asset_id TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
)`

// EnsureSchema crea la tabla si no existe. Idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure animals schema: %w", err)
	}
	return nil
}
