package history

import (
	"context"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

// Noop logs records instead of storing them, for deployments without Postgres.
type Noop struct {
	logger logger.Logger
}

func NewNoop(logger logger.Logger) *Noop {
	return &Noop{logger: logger.WithComponent("PublishHistory")}
}

var _ Repository = (*Noop)(nil)

func (n *Noop) Record(_ context.Context, record domain.PublishRecord) error {
	n.logger.Debug("Publish result",
		"file", record.FileName,
		"platform", record.Platform,
		"outcome", record.Outcome,
		"post_id", record.PostID,
	)
	return nil
}

func (n *Noop) Latest(context.Context, int) ([]domain.PublishRecord, error) {
	return nil, nil
}
