package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PublishHistoryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Record(ctx context.Context, record domain.PublishRecord) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	record.CreatedAt = createdAt
	query, args, err := recordQuery(record)
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

func (p *Pgx) Latest(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	query, args, err := latestQuery(limit)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PublishRecord
	for rows.Next() {
		var (
			rec      domain.PublishRecord
			platform string
			outcome  string
		)
		if err := rows.Scan(&rec.ID, &rec.FileName, &platform, &outcome, &rec.PostID, &rec.Permalink, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Platform = domain.Platform(platform)
		rec.Outcome = domain.Outcome(outcome)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func recordQuery(record domain.PublishRecord) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Insert("publish_history").
		Columns("file_name", "platform", "outcome", "post_id", "permalink", "error", "created_at").
		Values(record.FileName, string(record.Platform), string(record.Outcome), record.PostID, record.Permalink, record.Error, record.CreatedAt).
		ToSql()
}

func latestQuery(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return repositories.SqBuilder.
		Select("id", "file_name", "platform", "outcome", "post_id", "permalink", "error", "created_at").
		From("publish_history").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}
