package fx

import (
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/history"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/postlog"
	"go.uber.org/fx"
)

var Module = fx.Options(
	postlog.Module,
	history.Module,
)
