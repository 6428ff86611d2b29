package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New returns a nil pool when Postgres is disabled; the repositories then fall
// back to their file and no-op stores.
func New(opts Opts) (*pgxpool.Pool, error) {
	if !opts.Config.Postgres.Enabled {
		opts.Logger.Info("Postgres disabled, using file stores")
		return nil, nil
	}

	pool, err := pgxpool.New(context.Background(), opts.Config.GetPoolURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := pool.Ping(ctx); err != nil {
					return fmt.Errorf("failed to ping postgres: %w", err)
				}
				opts.Logger.Info("Connected to postgres", "host", opts.Config.Postgres.Host, "db", opts.Config.Postgres.Name)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		},
	)

	return pool, nil
}
