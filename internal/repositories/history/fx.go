package history

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Logger logger.Logger
	Pool   *pgxpool.Pool `optional:"true"`
}

func NewRepository(opts Opts) Repository {
	if opts.Pool != nil {
		return NewPgx(opts.Pool, opts.Logger)
	}
	return NewNoop(opts.Logger)
}

var Module = fx.Module("history_repository",
	fx.Provide(NewRepository),
)
