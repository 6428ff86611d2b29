//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock.go

// Package source abstracts the remote folder media is posted from.
package source

import (
	"context"
	"fmt"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

type Source interface {
	// Open authenticates against the backend. Failure is fatal for the run.
	Open(ctx context.Context) error
	// ListCandidates returns recognised media in the backend's listing order.
	// Backend errors are reported and yield an empty list.
	ListCandidates(ctx context.Context, folder string) []domain.MediaCandidate
	// TemporaryLink returns a time-limited direct URL a platform can fetch.
	TemporaryLink(ctx context.Context, candidate domain.MediaCandidate) (string, error)
	// Metadata returns dimensions and duration, or nil when the backend does not know them.
	Metadata(ctx context.Context, candidate domain.MediaCandidate) (*domain.MediaMetadata, error)
	// Delete removes the candidate. Errors wrap errors.ErrDelete.
	Delete(ctx context.Context, candidate domain.MediaCandidate) error
}

// ReportListError logs and notifies a listing failure.
func ReportListError(log logger.Logger, notify notifier.Notifier, backend, folder string, err error) {
	log.Error("Failed to list source folder", "backend", backend, "folder", folder, "error", err)
	notify.Send(fmt.Sprintf("⚠️ Could not list %s folder %q: %v", backend, folder, err))
}

// Candidate builds a MediaCandidate, reporting false for unrecognised extensions.
func Candidate(name, location string, size int64) (domain.MediaCandidate, bool) {
	kind, ok := domain.KindFromName(name)
	if !ok {
		return domain.MediaCandidate{}, false
	}
	return domain.MediaCandidate{
		Name:      name,
		Location:  location,
		SizeBytes: size,
		Kind:      kind,
	}, true
}
