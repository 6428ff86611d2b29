package facebookimpl

import (
	"net/http"
	"strings"
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
	StatusRetries:  10,
	StatusInterval: 15 * time.Second,
	VerifyRetries:  10,
	VerifyInterval: 10 * time.Second,
}

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter `optional:"true"`
}

type FacebookImpl struct {
	graph      *graph.Client
	pageID     string
	ruploadURL string
	apiVersion string
	poll       platform.PollConfig
	logger     logger.Logger
}

func New(opts Opts) *FacebookImpl {
	log := opts.Logger.WithComponent("facebook")
	poll := opts.Config.Facebook

	return &FacebookImpl{
		graph: graph.New(graph.Opts{
			BaseURL:    opts.Config.GraphBase(),
			Platform:   string(domain.PlatformFacebook),
			HTTPClient: &http.Client{Timeout: 5 * time.Minute},
			Limiter:    opts.Limiter,
			Logger:     log,
			Retry:      retry.DefaultConfig(),
		}),
		pageID:     opts.Config.Meta.FacebookPageID,
		ruploadURL: strings.TrimRight(opts.Config.Meta.RuploadURL, "/"),
		apiVersion: opts.Config.Meta.APIVersion,
		poll: platform.PollConfig{
			StatusRetries:  poll.StatusRetries,
			StatusInterval: poll.StatusInterval,
			VerifyRetries:  poll.VerifyRetries,
			VerifyInterval: poll.VerifyInterval,
		}.WithDefaults(defaultPoll),
		logger: log,
	}
}

var _ platform.Client = (*FacebookImpl)(nil)

func (fb *FacebookImpl) Platform() domain.Platform {
	return domain.PlatformFacebook
}
