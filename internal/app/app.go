package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/migrations"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier/telegramimpl"
	"github.com/orgball2608/reel-publisher-bot/internal/pgx"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	"github.com/orgball2608/reel-publisher-bot/internal/platform/facebookimpl"
	"github.com/orgball2608/reel-publisher-bot/internal/platform/instagramimpl"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher/publisherimpl"
	"github.com/orgball2608/reel-publisher-bot/internal/ratelimit"
	repositories "github.com/orgball2608/reel-publisher-bot/internal/repositories/fx"
	"github.com/orgball2608/reel-publisher-bot/internal/scheduler"
	"github.com/orgball2608/reel-publisher-bot/internal/secrets"
	"github.com/orgball2608/reel-publisher-bot/internal/server"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/internal/source/dropboximpl"
	"github.com/orgball2608/reel-publisher-bot/internal/source/gcsimpl"
	"github.com/orgball2608/reel-publisher-bot/internal/source/s3impl"
	"github.com/orgball2608/reel-publisher-bot/internal/token"
	"github.com/orgball2608/reel-publisher-bot/internal/token/tokenimpl"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

const graphBurst = 5

// Core builds everything a publish run needs.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		newLimiter,
		newSource,
	),
	fx.Decorate(secrets.Decorate),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(notifier.Notifier)),
		), fx.Annotate(
			tokenimpl.New,
			fx.As(new(token.Provider)),
		), fx.Annotate(
			instagramimpl.New,
			fx.As(new(platform.Client)),
			fx.ResultTags(`group:"platforms"`),
		), fx.Annotate(
			facebookimpl.New,
			fx.As(new(platform.Client)),
			fx.ResultTags(`group:"platforms"`),
		), fx.Annotate(
			publisherimpl.New,
			fx.As(new(publisher.Publisher)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
)

// Scheduled adds the weekly scheduler and the health server to Core.
var Scheduled = fx.Options(
	Core,
	scheduler.Module,
	server.Module,
)

func newLimiter(cfg *config.Config) ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(cfg.Meta.RequestsPerMin, time.Minute, graphBurst)
}

type sourceOpts struct {
	fx.In
	LC fx.Lifecycle

	Config   *config.Config
	Logger   logger.Logger
	Tokens   token.Provider
	Notifier notifier.Notifier
}

// newSource picks the storage backend named by SOURCE_BACKEND.
func newSource(opts sourceOpts) (source.Source, error) {
	var src source.Source
	switch opts.Config.Source.Backend {
	case "", "dropbox":
		src = dropboximpl.New(dropboximpl.Opts{Tokens: opts.Tokens, Notifier: opts.Notifier, Logger: opts.Logger})
	case "s3", "r2":
		src = s3impl.New(s3impl.Opts{Config: opts.Config, Notifier: opts.Notifier, Logger: opts.Logger})
	case "gcs":
		src = gcsimpl.New(gcsimpl.Opts{Config: opts.Config, Notifier: opts.Notifier, Logger: opts.Logger})
	default:
		return nil, fmt.Errorf("%w: unknown source backend %q", errors.ErrConfig, opts.Config.Source.Backend)
	}

	if closer, ok := src.(io.Closer); ok {
		opts.LC.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return closer.Close()
			},
		})
	}
	return src, nil
}

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	if !cfg.Postgres.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return migrations.Up(ctx, cfg.GetDSN(), log)
		},
	})
}
