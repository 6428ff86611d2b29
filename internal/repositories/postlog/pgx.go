package postlog

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

// Pgx stores one row per day. Increment is a single conditional upsert, so
// concurrent runs cannot push the count past the limit.
type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostLogRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, date string) (domain.DailyPostLog, error) {
	query, args, err := repositories.SqBuilder.
		Select("post_count").
		From("daily_post_log").
		Where(sq.Eq{"day": date}).
		ToSql()
	if err != nil {
		return domain.DailyPostLog{}, repositories.ErrBadQuery
	}

	entry := domain.DailyPostLog{Date: date}
	err = p.pg.QueryRow(ctx, query, args...).Scan(&entry.Count)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.DailyPostLog{}, err
	}
	return entry, nil
}

func (p *Pgx) Increment(ctx context.Context, date string, limit int) (domain.DailyPostLog, error) {
	query, args, err := incrementQuery(date, limit, time.Now())
	if err != nil {
		return domain.DailyPostLog{}, repositories.ErrBadQuery
	}

	entry := domain.DailyPostLog{Date: date}
	err = p.pg.QueryRow(ctx, query, args...).Scan(&entry.Count)
	if errors.Is(err, pgx.ErrNoRows) {
		entry.Count = limit
		return entry, ErrCapReached
	}
	if err != nil {
		return domain.DailyPostLog{}, err
	}
	return entry, nil
}

func incrementQuery(date string, limit int, now time.Time) (string, []interface{}, error) {
	upsert := "ON CONFLICT (day) DO UPDATE SET post_count = daily_post_log.post_count + 1, updated_at = EXCLUDED.updated_at"
	var suffixArgs []interface{}
	if limit > 0 {
		upsert += " WHERE daily_post_log.post_count < ?"
		suffixArgs = append(suffixArgs, limit)
	}

	return repositories.SqBuilder.
		Insert("daily_post_log").
		Columns("day", "post_count", "updated_at").
		Values(date, 1, now).
		Suffix(upsert+" RETURNING post_count", suffixArgs...).
		ToSql()
}
