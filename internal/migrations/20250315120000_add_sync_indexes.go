package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddSyncIndexes, downAddSyncIndexes)
}

func upAddSyncIndexes(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_targets_visibility ON targets(visibility);
		CREATE INDEX IF NOT EXISTS idx_media_items_downloaded_at ON media_items(downloaded_at) WHERE local_path IS NOT NULL;
		CREATE INDEX IF NOT EXISTS idx_sync_runs_target_started ON sync_runs(target_username, started_at DESC);
	`)
	return err
}

func downAddSyncIndexes(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS idx_sync_runs_target_started;
		DROP INDEX IF EXISTS idx_media_items_downloaded_at;
		DROP INDEX IF EXISTS idx_targets_visibility;
	`)
	return err
}
