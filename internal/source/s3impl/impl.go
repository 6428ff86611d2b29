package s3impl

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Notifier notifier.Notifier
	Logger   logger.Logger
}

// S3Impl serves candidates from an S3 compatible bucket (AWS, Cloudflare R2, MinIO).
// Folders are key prefixes.
type S3Impl struct {
	cfg      *config.Config
	notifier notifier.Notifier
	logger   logger.Logger

	client    *s3.Client
	presigner *s3.PresignClient
}

func New(opts Opts) *S3Impl {
	return &S3Impl{
		cfg:      opts.Config,
		notifier: opts.Notifier,
		logger:   opts.Logger.WithComponent("s3"),
	}
}

var _ source.Source = (*S3Impl)(nil)

func (s *S3Impl) Open(ctx context.Context) error {
	c := s.cfg.S3
	if c.Bucket == "" {
		return fmt.Errorf("%w: S3_BUCKET is not set", errors.ErrConfig)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("%w: load aws config: %v", errors.ErrAuth, err)
	}

	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	s.presigner = s3.NewPresignClient(s.client)

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.Bucket)}); err != nil {
		return fmt.Errorf("%w: bucket %s not reachable: %v", errors.ErrAuth, c.Bucket, err)
	}

	s.logger.Info("S3 client ready", "bucket", c.Bucket, "endpoint", c.Endpoint)
	return nil
}

func (s *S3Impl) ListCandidates(ctx context.Context, folder string) []domain.MediaCandidate {
	if s.client == nil {
		source.ReportListError(s.logger, s.notifier, "s3", folder, fmt.Errorf("client used before Open"))
		return nil
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.S3.Bucket),
		Prefix: aws.String(prefix(folder)),
	})

	var candidates []domain.MediaCandidate
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if len(candidates) == 0 {
				source.ReportListError(s.logger, s.notifier, "s3", folder, err)
				return nil
			}
			s.logger.Warn("Listing page failed", "folder", folder, "error", err)
			break
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if c, ok := source.Candidate(baseName(key), key, aws.ToInt64(obj.Size)); ok {
				candidates = append(candidates, c)
			}
		}
	}

	s.logger.Info("Listed prefix", "prefix", folder, "candidates", len(candidates))
	return candidates
}

func (s *S3Impl) TemporaryLink(ctx context.Context, candidate domain.MediaCandidate) (string, error) {
	if s.presigner == nil {
		return "", fmt.Errorf("s3 presigner used before Open")
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(s.cfg.S3.Bucket),
		Key:                 aws.String(candidate.Location),
		ResponseContentType: aws.String(domain.ContentType(candidate.Name)),
	}, s3.WithPresignExpires(linkTTL(s.cfg.Source.LinkTTL)))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", candidate.Name, err)
	}
	return req.URL, nil
}

// Metadata is unknown for plain objects, so videos are posted as plain video
// on platforms that distinguish reels.
func (s *S3Impl) Metadata(context.Context, domain.MediaCandidate) (*domain.MediaMetadata, error) {
	return nil, nil
}

func (s *S3Impl) Delete(ctx context.Context, candidate domain.MediaCandidate) error {
	if s.client == nil {
		return fmt.Errorf("%w: client used before Open", errors.ErrDelete)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3.Bucket),
		Key:    aws.String(candidate.Location),
	})
	if err != nil {
		return fmt.Errorf("%w: s3 delete %s: %v", errors.ErrDelete, candidate.Name, err)
	}
	s.logger.Info("Deleted object", "key", candidate.Location)
	return nil
}

func linkTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 4 * time.Hour
	}
	return ttl
}
