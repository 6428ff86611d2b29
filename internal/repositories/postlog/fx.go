package postlog

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Pool   *pgxpool.Pool `optional:"true"`
}

// NewRepository picks Postgres when a pool is available, the JSON file otherwise.
func NewRepository(opts Opts) Repository {
	if opts.Pool != nil {
		return NewPgx(opts.Pool, opts.Logger)
	}
	return NewFile(opts.Config.Publish.DailyLogPath, opts.Logger)
}

var Module = fx.Module("postlog_repository",
	fx.Provide(NewRepository),
)
