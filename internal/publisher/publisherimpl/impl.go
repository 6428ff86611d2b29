package publisherimpl

import (
	"fmt"
	"sync"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/history"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/postlog"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/internal/token"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Source   source.Source
	Tokens   token.Provider
	Notifier notifier.Notifier
	PostLog  postlog.Repository
	History  history.Repository
	Clients  []platform.Client `group:"platforms"`
}

// settings is the part of the configuration a run reads.
type settings struct {
	policy              publisher.Policy
	folder              string
	maxAttempts         int
	maxFilesToCheck     int
	dailyCap            int
	secondaryVideosOnly bool
	checkToken          bool
	metaToken           string
	scheduleFile        string
	accountKey          string
	defaultCaption      string
	location            *time.Location
}

type PublisherImpl struct {
	settings settings
	clients  []platform.Client

	source   source.Source
	tokens   token.Provider
	notifier notifier.Notifier
	postLog  postlog.Repository
	history  history.Repository
	logger   logger.Logger
	now      func() time.Time

	mu   sync.RWMutex
	last *domain.RunReport
}

var _ publisher.Publisher = (*PublisherImpl)(nil)

func New(opts Opts) (*PublisherImpl, error) {
	cfg := opts.Config
	log := opts.Logger.WithComponent("publisher")

	policy, err := publisher.ParsePolicy(cfg.Publish.Policy)
	if err != nil {
		return nil, err
	}

	clients, err := orderClients(cfg.Publish.Platforms, opts.Clients)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.Schedule.AccountKey == "" {
		log.Warn("SCHEDULE_ACCOUNT_KEY is empty, every run uses the default caption")
	}

	p := &PublisherImpl{
		settings: settings{
			policy:              policy,
			folder:              cfg.Source.Folder,
			maxAttempts:         atLeastOne(cfg.Publish.MaxAttempts),
			maxFilesToCheck:     atLeastOne(cfg.Publish.MaxFilesToCheck),
			dailyCap:            cfg.Publish.DailyCap,
			secondaryVideosOnly: cfg.Publish.SecondaryVideosOnly,
			checkToken:          cfg.Publish.CheckToken,
			metaToken:           cfg.Meta.Token,
			scheduleFile:        cfg.Schedule.File,
			accountKey:          cfg.Schedule.AccountKey,
			defaultCaption:      cfg.Schedule.DefaultCaption,
			location:            loc,
		},
		clients:  clients,
		source:   opts.Source,
		tokens:   opts.Tokens,
		notifier: opts.Notifier,
		postLog:  opts.PostLog,
		history:  opts.History,
		logger:   log,
		now:      time.Now,
	}

	log.Info("Publisher configured",
		"policy", policy,
		"platforms", platformNames(clients),
		"daily_cap", p.settings.dailyCap)
	return p, nil
}

// orderClients returns the clients in the configured platform order.
// The first one is the primary platform.
func orderClients(names []string, available []platform.Client) ([]platform.Client, error) {
	byPlatform := make(map[domain.Platform]platform.Client, len(available))
	for _, c := range available {
		byPlatform[c.Platform()] = c
	}

	var ordered []platform.Client
	seen := make(map[domain.Platform]bool)
	for _, name := range names {
		p, ok := domain.ParsePlatform(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown platform %q", apperrors.ErrConfig, name)
		}
		client, found := byPlatform[p]
		if !found {
			return nil, fmt.Errorf("%w: no client for platform %q", apperrors.ErrConfig, name)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		ordered = append(ordered, client)
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("%w: no publish platforms configured", apperrors.ErrConfig)
	}
	return ordered, nil
}

func (p *PublisherImpl) LastReport() (domain.RunReport, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return domain.RunReport{}, false
	}
	return *p.last, true
}

func (p *PublisherImpl) setLast(report domain.RunReport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = &report
}

func (p *PublisherImpl) primary() platform.Client {
	return p.clients[0]
}

// secondary returns nil when only one platform is configured.
func (p *PublisherImpl) secondary() platform.Client {
	if len(p.clients) < 2 {
		return nil
	}
	return p.clients[1]
}

func platformNames(clients []platform.Client) []string {
	names := make([]string, 0, len(clients))
	for _, c := range clients {
		names = append(names, string(c.Platform()))
	}
	return names
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
