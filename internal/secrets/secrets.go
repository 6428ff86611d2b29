// Package secrets resolves configuration values stored in Google Secret Manager.
// A value of the form gcpsm://projects/<p>/secrets/<s>/versions/<v> is replaced
// by the payload of that secret version.
package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

const Scheme = "gcpsm://"

const resolveTimeout = 30 * time.Second

// Accessor reads the payload of one secret version.
type Accessor interface {
	Access(ctx context.Context, name string) (string, error)
	Close() error
}

type gcpAccessor struct {
	client *secretmanager.Client
}

func newGCPAccessor(ctx context.Context) (Accessor, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &gcpAccessor{client: client}, nil
}

func (a *gcpAccessor) Access(ctx context.Context, name string) (string, error) {
	resp, err := a.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", err
	}
	return string(resp.GetPayload().GetData()), nil
}

func (a *gcpAccessor) Close() error {
	return a.client.Close()
}

// newAccessor is swapped in tests.
var newAccessor = newGCPAccessor

// fields lists the configuration values that may hold a secret reference.
func fields(cfg *config.Config) map[string]*string {
	return map[string]*string{
		"META_TOKEN":            &cfg.Meta.Token,
		"META_APP_TOKEN":        &cfg.Meta.AppToken,
		"DROPBOX_APP_KEY":       &cfg.Dropbox.AppKey,
		"DROPBOX_APP_SECRET":    &cfg.Dropbox.AppSecret,
		"DROPBOX_REFRESH_TOKEN": &cfg.Dropbox.RefreshToken,
		"S3_ACCESS_KEY":         &cfg.S3.AccessKey,
		"S3_SECRET_KEY":         &cfg.S3.SecretKey,
		"TELEGRAM_BOT_TOKEN":    &cfg.Telegram.Token,
		"POSTGRES_PASS":         &cfg.Postgres.Pass,
		"SENTRY_URL":            &cfg.App.SentryUrl,
	}
}

// Resolve replaces every secret reference in cfg. The Secret Manager client is
// only created when at least one reference is present.
func Resolve(ctx context.Context, cfg *config.Config) error {
	refs := make(map[string]*string)
	for name, value := range fields(cfg) {
		if strings.HasPrefix(*value, Scheme) {
			refs[name] = value
		}
	}
	if len(refs) == 0 {
		return nil
	}

	accessor, err := newAccessor(ctx)
	if err != nil {
		return fmt.Errorf("%w: secret manager client: %v", errors.ErrConfig, err)
	}
	defer accessor.Close()

	for name, value := range refs {
		payload, err := accessor.Access(ctx, strings.TrimPrefix(*value, Scheme))
		if err != nil {
			return fmt.Errorf("%w: resolve %s: %v", errors.ErrConfig, name, err)
		}
		*value = strings.TrimSpace(payload)
	}
	return nil
}

// Decorate resolves the secrets of the shared configuration before any
// component reads it.
func Decorate(cfg *config.Config) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	if err := Resolve(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
