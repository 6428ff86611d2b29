//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock.go

// Package publisher turns the candidate files of the source folder into at most
// one post per run.
package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

// Policy decides how platform failures affect the candidate file and the run.
type Policy string

const (
	// PolicySequentialDual posts to the primary platform, then the secondary one,
	// and deletes the file only when both succeed.
	PolicySequentialDual Policy = "SEQUENTIAL_DUAL"
	// PolicyConcurrentDual uploads to both platforms at once and joins the outcomes.
	PolicyConcurrentDual Policy = "CONCURRENT_DUAL"
	// PolicySinglePlatformRetry posts to the primary platform only and deletes every
	// attempted file.
	PolicySinglePlatformRetry Policy = "SINGLE_PLATFORM_RETRY"
	// PolicyModerationAware is SEQUENTIAL_DUAL where a moderation rejection deletes
	// the file and moves on.
	PolicyModerationAware Policy = "MODERATION_AWARE"
)

// ParsePolicy accepts policy names case-insensitively. Empty means SEQUENTIAL_DUAL.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicySequentialDual, nil
	}
	switch p := Policy(strings.ToUpper(strings.TrimSpace(s))); p {
	case PolicySequentialDual, PolicyConcurrentDual, PolicySinglePlatformRetry, PolicyModerationAware:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown publish policy %q", apperrors.ErrConfig, s)
	}
}

type Publisher interface {
	// Run executes one batch: at most one candidate ends up posted.
	// Only run-level failures are returned; candidate failures are part of the report.
	Run(ctx context.Context) (domain.RunReport, error)

	// LastReport returns the report of the most recent finished run.
	LastReport() (domain.RunReport, bool)
}
