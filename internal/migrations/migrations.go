// Package migrations holds the Postgres schema as goose Go migrations.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/pressly/goose/v3"
)

// Up applies every registered migration. Go migrations need no directory on disk.
func Up(ctx context.Context, dsn string, log logger.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, nil)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		log.Info("Migration applied", "version", res.Source.Version, "path", res.Source.Path, "duration", res.Duration.String())
	}
	return nil
}
