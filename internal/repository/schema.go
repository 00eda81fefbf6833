package repository

import (
	"context"
	"fmt"
)

// Schema creates the locations table used by the repository.
const Schema = `
	CREATE TABLE IF NOT EXISTS public.locations (
		location_id      SERIAL PRIMARY KEY,
		name             TEXT NOT NULL UNIQUE,
		address          TEXT,
		latitude         DOUBLE PRECISION,
		longitude        DOUBLE PRECISION,
		grid_x           INTEGER,
		grid_y           INTEGER,
		resolve_attempts INTEGER NOT NULL DEFAULT 0,
		resolve_error    TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// Migrate applies Schema. It is idempotent.
func Migrate(ctx context.Context, db Database) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
