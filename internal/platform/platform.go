//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock.go

// Package platform defines the asynchronous upload pipeline every social
// platform client implements: create, await processing, publish, verify.
package platform

import (
	"context"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
)

// CreateRequest describes one media container to create on a platform.
type CreateRequest struct {
	Name      string
	SourceURL string
	MediaType domain.MediaType
	Caption   domain.Caption
}

type Client interface {
	Platform() domain.Platform

	// CreateMedia asks the platform to fetch SourceURL and returns a job in PROCESSING.
	CreateMedia(ctx context.Context, token domain.Token, req CreateRequest) (*domain.UploadJob, error)
	// AwaitProcessing polls until the job is FINISHED. Image jobs finish without polling,
	// and a job that already finished is returned as is.
	AwaitProcessing(ctx context.Context, token domain.Token, job *domain.UploadJob) error
	// Publish makes a FINISHED job public and records its published id.
	Publish(ctx context.Context, token domain.Token, job *domain.UploadJob) error
	// VerifyLive reports whether the published artifact became retrievable within the
	// verification budget. Exhausting the budget is not an error.
	VerifyLive(ctx context.Context, token domain.Token, job *domain.UploadJob) bool
}

// PollConfig bounds the status and verification loops.
type PollConfig struct {
	StatusRetries  int
	StatusInterval time.Duration
	VerifyRetries  int
	VerifyInterval time.Duration
}

// WithDefaults fills every zero field from def.
func (c PollConfig) WithDefaults(def PollConfig) PollConfig {
	if c.StatusRetries <= 0 {
		c.StatusRetries = def.StatusRetries
	}
	if c.StatusInterval <= 0 {
		c.StatusInterval = def.StatusInterval
	}
	if c.VerifyRetries <= 0 {
		c.VerifyRetries = def.VerifyRetries
	}
	if c.VerifyInterval <= 0 {
		c.VerifyInterval = def.VerifyInterval
	}
	return c
}
