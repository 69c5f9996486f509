package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(512) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id          UUID PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description VARCHAR(512) NOT NULL DEFAULT '',
		available   BOOLEAN NOT NULL,
		owner_id    UUID NOT NULL REFERENCES users (id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS items_owner_id ON items (owner_id)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         UUID PRIMARY KEY,
		start_date TIMESTAMPTZ NOT NULL,
		end_date   TIMESTAMPTZ NOT NULL,
		item_id    UUID NOT NULL REFERENCES items (id),
		booker_id  UUID NOT NULL REFERENCES users (id),
		status     VARCHAR(16) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT bookings_interval CHECK (start_date < end_date),
		CONSTRAINT bookings_status CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED'))
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_item_start ON bookings (item_id, start_date)`,
	`CREATE INDEX IF NOT EXISTS bookings_booker_start ON bookings (booker_id, start_date DESC)`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db Querier) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
