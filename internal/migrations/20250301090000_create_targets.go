package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTargets, downCreateTargets)
}

func upCreateTargets(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS targets (
			username        VARCHAR(30) PRIMARY KEY,
			visibility      VARCHAR(16) NOT NULL CHECK (visibility IN ('public', 'private')),
			full_name       TEXT NOT NULL DEFAULT '',
			biography       TEXT NOT NULL DEFAULT '',
			external_url    TEXT NOT NULL DEFAULT '',
			followers       INTEGER NOT NULL DEFAULT 0,
			followees       INTEGER NOT NULL DEFAULT 0,
			post_count      INTEGER NOT NULL DEFAULT 0,
			last_synced_at  TIMESTAMP WITH TIME ZONE,
			last_checkpoint TEXT,
			created_at      TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func downCreateTargets(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS targets;`)
	return err
}
