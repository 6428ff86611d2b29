package dropboximpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/internal/token"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

// filesAPI is the part of the Dropbox files client this backend uses.
type filesAPI interface {
	ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error)
	ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error)
	GetTemporaryLink(arg *files.GetTemporaryLinkArg) (*files.GetTemporaryLinkResult, error)
	GetMetadata(arg *files.GetMetadataArg) (files.IsMetadata, error)
	DeleteV2(arg *files.DeleteArg) (*files.DeleteResult, error)
}

type Opts struct {
	fx.In

	Tokens   token.Provider
	Notifier notifier.Notifier
	Logger   logger.Logger
}

type DropboxImpl struct {
	tokens   token.Provider
	notifier notifier.Notifier
	logger   logger.Logger

	mu     sync.RWMutex
	client filesAPI
	// newClient is swapped in tests.
	newClient func(accessToken string) filesAPI
}

func New(opts Opts) *DropboxImpl {
	return &DropboxImpl{
		tokens:   opts.Tokens,
		notifier: opts.Notifier,
		logger:   opts.Logger.WithComponent("dropbox"),
		newClient: func(accessToken string) filesAPI {
			return files.New(dropbox.Config{Token: accessToken, LogLevel: dropbox.LogOff})
		},
	}
}

var _ source.Source = (*DropboxImpl)(nil)

// Open exchanges the refresh token and builds a files client with the fresh access token.
func (d *DropboxImpl) Open(ctx context.Context) error {
	tok, err := d.tokens.GetAccessToken(ctx, domain.ScopeStorage)
	if err != nil {
		return fmt.Errorf("dropbox authentication failed: %w", err)
	}

	d.mu.Lock()
	d.client = d.newClient(tok.Value)
	d.mu.Unlock()

	d.logger.Info("Dropbox client ready")
	return nil
}

func (d *DropboxImpl) api() (filesAPI, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.client == nil {
		return nil, fmt.Errorf("dropbox client used before Open")
	}
	return d.client, nil
}
