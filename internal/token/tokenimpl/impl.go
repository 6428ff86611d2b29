package tokenimpl

import (
	"github.com/orgball2608/reel-publisher-bot/internal/graph"
	"github.com/orgball2608/reel-publisher-bot/internal/ratelimit"
	"github.com/orgball2608/reel-publisher-bot/internal/token"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/orgball2608/reel-publisher-bot/pkg/retry"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter `optional:"true"`
}

type ProviderImpl struct {
	storage      *oauth2.Config
	refreshToken string

	graph            *graph.Client
	userToken        string
	appToken         string
	pageID           string
	instagramID      string
	resolvePageToken bool

	logger logger.Logger
}

func New(opts Opts) *ProviderImpl {
	cfg := opts.Config
	log := opts.Logger.WithComponent("token")

	return &ProviderImpl{
		storage: &oauth2.Config{
			ClientID:     cfg.Dropbox.AppKey,
			ClientSecret: cfg.Dropbox.AppSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.Dropbox.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken: cfg.Dropbox.RefreshToken,
		graph: graph.New(graph.Opts{
			BaseURL:  cfg.GraphBase(),
			Platform: "meta",
			Limiter:  opts.Limiter,
			Logger:   log,
			Retry:    retry.DefaultConfig(),
		}),
		userToken:        cfg.Meta.Token,
		appToken:         cfg.Meta.AppToken,
		pageID:           cfg.Meta.FacebookPageID,
		instagramID:      cfg.Meta.InstagramID,
		resolvePageToken: cfg.Meta.ResolvePageToken,
		logger:           log,
	}
}

var _ token.Provider = (*ProviderImpl)(nil)
