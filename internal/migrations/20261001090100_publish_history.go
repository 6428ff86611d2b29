package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upPublishHistory, downPublishHistory)
}

func upPublishHistory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS publish_history (
			id         SERIAL PRIMARY KEY,
			file_name  VARCHAR NOT NULL,
			platform   VARCHAR NOT NULL,
			outcome    VARCHAR NOT NULL,
			post_id    VARCHAR,
			permalink  VARCHAR,
			error      TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS publish_history_created_at_idx ON publish_history (created_at DESC);
	`)
	return err
}

func downPublishHistory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS publish_history;`)
	return err
}
