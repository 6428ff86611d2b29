package logger

import (
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"go.uber.org/fx"
)

var FxOption = fx.Annotate(
	func(cfg *config.Config) *Impl {
		return New(
			Opts{
				Env:       cfg.App.Env,
				SentryDSN: cfg.App.SentryUrl,
				Release:   cfg.App.Name,
			},
		)
	},
	fx.As(new(Logger)),
)
