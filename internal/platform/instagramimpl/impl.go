package instagramimpl

import (
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/graph"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	"github.com/orgball2608/reel-publisher-bot/internal/ratelimit"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/orgball2608/reel-publisher-bot/pkg/retry"
	"go.uber.org/fx"
)

var defaultPoll = platform.PollConfig{
	StatusRetries:  20,
	StatusInterval: 5 * time.Second,
	VerifyRetries:  5,
	VerifyInterval: 5 * time.Second,
}

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter `optional:"true"`
}

type InstagramImpl struct {
	graph     *graph.Client
	accountID string
	poll      platform.PollConfig
	logger    logger.Logger
}

func New(opts Opts) *InstagramImpl {
	log := opts.Logger.WithComponent("instagram")
	poll := opts.Config.Instagram

	return &InstagramImpl{
		graph: graph.New(graph.Opts{
			BaseURL:  opts.Config.GraphBase(),
			Platform: string(domain.PlatformInstagram),
			Limiter:  opts.Limiter,
			Logger:   log,
			Retry:    retry.DefaultConfig(),
		}),
		accountID: opts.Config.Meta.InstagramID,
		poll: platform.PollConfig{
			StatusRetries:  poll.StatusRetries,
			StatusInterval: poll.StatusInterval,
			VerifyRetries:  poll.VerifyRetries,
			VerifyInterval: poll.VerifyInterval,
		}.WithDefaults(defaultPoll),
		logger: log,
	}
}

var _ platform.Client = (*InstagramImpl)(nil)

func (ig *InstagramImpl) Platform() domain.Platform {
	return domain.PlatformInstagram
}
