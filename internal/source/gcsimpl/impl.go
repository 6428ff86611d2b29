package gcsimpl

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Notifier notifier.Notifier
	Logger   logger.Logger
}

type GCSImpl struct {
	cfg      *config.Config
	notifier notifier.Notifier
	logger   logger.Logger

	client *storage.Client
	bucket *storage.BucketHandle
}

func New(opts Opts) *GCSImpl {
	return &GCSImpl{
		cfg:      opts.Config,
		notifier: opts.Notifier,
		logger:   opts.Logger.WithComponent("gcs"),
	}
}

var _ source.Source = (*GCSImpl)(nil)

// Open creates the client on the first run and reuses it afterwards; the
// bucket is checked every time.
func (g *GCSImpl) Open(ctx context.Context) error {
	c := g.cfg.GCS
	if c.Bucket == "" {
		return fmt.Errorf("%w: GCS_BUCKET is not set", errors.ErrConfig)
	}
	if g.client != nil {
		if _, err := g.bucket.Attrs(ctx); err != nil {
			return fmt.Errorf("%w: bucket %s not reachable: %v", errors.ErrAuth, c.Bucket, err)
		}
		return nil
	}

	var clientOpts []option.ClientOption
	if c.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(c.CredentialsFile))
	}
	if c.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(c.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return fmt.Errorf("%w: failed to create GCS client: %v", errors.ErrAuth, err)
	}
	bucket := client.Bucket(c.Bucket)
	if _, err := bucket.Attrs(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("%w: bucket %s not reachable: %v", errors.ErrAuth, c.Bucket, err)
	}

	g.client, g.bucket = client, bucket
	g.logger.Info("GCS client ready", "bucket", c.Bucket)
	return nil
}

// Close releases the client.
func (g *GCSImpl) Close() error {
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client, g.bucket = nil, nil
	return err
}

func (g *GCSImpl) ListCandidates(ctx context.Context, folder string) []domain.MediaCandidate {
	if g.bucket == nil {
		source.ReportListError(g.logger, g.notifier, "gcs", folder, fmt.Errorf("client used before Open"))
		return nil
	}

	prefix := strings.Trim(folder, "/")
	if prefix != "" {
		prefix += "/"
	}

	var candidates []domain.MediaCandidate
	it := g.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if len(candidates) == 0 {
				source.ReportListError(g.logger, g.notifier, "gcs", folder, err)
				return nil
			}
			g.logger.Warn("Listing interrupted", "folder", folder, "error", err)
			break
		}
		if c, ok := source.Candidate(path.Base(attrs.Name), attrs.Name, attrs.Size); ok {
			candidates = append(candidates, c)
		}
	}

	g.logger.Info("Listed prefix", "prefix", prefix, "candidates", len(candidates))
	return candidates
}

func (g *GCSImpl) TemporaryLink(_ context.Context, candidate domain.MediaCandidate) (string, error) {
	if g.bucket == nil {
		return "", fmt.Errorf("gcs client used before Open")
	}
	ttl := g.cfg.Source.LinkTTL
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	link, err := g.bucket.SignedURL(candidate.Location, &storage.SignedURLOptions{
		GoogleAccessID: g.cfg.GCS.SignerEmail,
		Method:         "GET",
		Expires:        time.Now().Add(ttl),
		Scheme:         storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", candidate.Name, err)
	}
	return link, nil
}

// Metadata reads width, height and duration (seconds) from custom object metadata.
func (g *GCSImpl) Metadata(ctx context.Context, candidate domain.MediaCandidate) (*domain.MediaMetadata, error) {
	if g.bucket == nil {
		return nil, fmt.Errorf("gcs client used before Open")
	}
	attrs, err := g.bucket.Object(candidate.Location).Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs attrs for %s: %w", candidate.Name, err)
	}
	return parseMetadata(attrs.Metadata), nil
}

func parseMetadata(m map[string]string) *domain.MediaMetadata {
	width, errW := strconv.Atoi(m["width"])
	height, errH := strconv.Atoi(m["height"])
	if errW != nil || errH != nil {
		return nil
	}
	meta := &domain.MediaMetadata{Width: width, Height: height}
	if secs, err := strconv.ParseFloat(m["duration"], 64); err == nil {
		meta.Duration = time.Duration(secs * float64(time.Second))
	}
	return meta
}

func (g *GCSImpl) Delete(ctx context.Context, candidate domain.MediaCandidate) error {
	if g.bucket == nil {
		return fmt.Errorf("%w: client used before Open", errors.ErrDelete)
	}
	if err := g.bucket.Object(candidate.Location).Delete(ctx); err != nil {
		return fmt.Errorf("%w: gcs delete %s: %v", errors.ErrDelete, candidate.Name, err)
	}
	g.logger.Info("Deleted object", "name", candidate.Location)
	return nil
}
