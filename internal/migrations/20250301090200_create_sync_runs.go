package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSyncRuns, downCreateSyncRuns)
}

func upCreateSyncRuns(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sync_runs (
			id              UUID PRIMARY KEY,
			target_username VARCHAR(30) NOT NULL REFERENCES targets(username) ON DELETE CASCADE,
			started_at      TIMESTAMP WITH TIME ZONE NOT NULL,
			finished_at     TIMESTAMP WITH TIME ZONE,
			outcome         VARCHAR(16) NOT NULL CHECK (outcome IN ('success', 'partial', 'failed')),
			items_planned   INTEGER NOT NULL DEFAULT 0,
			items_fetched   INTEGER NOT NULL DEFAULT 0,
			items_failed    INTEGER NOT NULL DEFAULT 0,
			error_kind      VARCHAR(32) NOT NULL DEFAULT '',
			error_message   TEXT NOT NULL DEFAULT ''
		);
	`)
	return err
}

func downCreateSyncRuns(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS sync_runs;`)
	return err
}
