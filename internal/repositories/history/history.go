package history

import (
	"context"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
)

// DefaultLimit is the number of records Latest returns for a non-positive limit.
const DefaultLimit = 20

//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=mocks/mock.go
type Repository interface {
	// Record stores one platform result of a run
	Record(ctx context.Context, record domain.PublishRecord) error

	// Latest returns the most recent records, newest first
	Latest(ctx context.Context, limit int) ([]domain.PublishRecord, error)
}
