package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateMediaItems, downCreateMediaItems)
}

func upCreateMediaItems(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS media_items (
			id              BIGSERIAL PRIMARY KEY,
			target_username VARCHAR(30) NOT NULL REFERENCES targets(username) ON DELETE CASCADE,
			remote_id       VARCHAR(64) NOT NULL,
			kind            VARCHAR(16) NOT NULL CHECK (kind IN ('photo', 'video', 'story', 'highlight')),
			source          VARCHAR(16) NOT NULL,
			captured_at     TIMESTAMP WITH TIME ZONE NOT NULL,
			local_path      TEXT,
			size_bytes      BIGINT NOT NULL DEFAULT 0,
			downloaded_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			UNIQUE (target_username, remote_id)
		);
	`)
	return err
}

func downCreateMediaItems(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS media_items;`)
	return err
}
