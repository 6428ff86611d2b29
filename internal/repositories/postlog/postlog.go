package postlog

import (
	"context"
	"errors"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
)

var ErrCapReached = errors.New("daily post cap reached")

//go:generate go run go.uber.org/mock/mockgen -source=postlog.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the log for date; a log stored for another day reads as zero.
	Get(ctx context.Context, date string) (domain.DailyPostLog, error)

	// Increment adds one post to date. With limit > 0 it fails with ErrCapReached
	// instead of going past the limit.
	Increment(ctx context.Context, date string, limit int) (domain.DailyPostLog, error)
}
