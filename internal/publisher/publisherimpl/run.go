package publisherimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/postlog"
	"github.com/orgball2608/reel-publisher-bot/internal/schedule"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/formatter"
)

const startedLayout = "2006-01-02 15:04:05 MST"

// Codes of run-level failures, reported in RunReport.ErrorCode.
const (
	CodePostLog       = "post_log"
	CodeTokenCheck    = "token_check"
	CodeSourceOpen    = "source_open"
	CodePlatformToken = "platform_token"
)

// run is the state of one execution. Nothing here outlives Run.
type run struct {
	caption    domain.Caption
	tokens     map[domain.Platform]domain.Token
	candidates []domain.MediaCandidate
	report     *domain.RunReport
}

func (p *PublisherImpl) Run(ctx context.Context) (domain.RunReport, error) {
	start := p.now()
	report := domain.RunReport{
		StartedAt: start,
		PostIDs:   make(map[domain.Platform]string),
	}
	p.logger.Info("Run started", "policy", p.settings.policy, "folder", p.settings.folder)
	p.notifier.Send(fmt.Sprintf("📡 Run started at %s", start.In(p.settings.location).Format(startedLayout)))

	err := p.execute(ctx, &report)
	if err != nil {
		report.Status = domain.RunFailed
		report.Error = err.Error()
		report.ErrorCode = apperrors.GetCode(err)
		p.logger.Error("Run failed", "code", report.ErrorCode, "error", err)
	}
	p.reportOutcome(report)

	report.FinishedAt = p.now()
	p.setLast(report)

	elapsed := report.FinishedAt.Sub(start)
	p.logger.Info("Run complete", "status", report.Status, "attempts", report.Attempts, "elapsed", elapsed.String())
	p.notifier.Send(fmt.Sprintf("⏱ Run complete in %ss", formatter.FormatSeconds(elapsed)))
	return report, err
}

// execute fills report.Status. A returned error is a run-level failure.
func (p *PublisherImpl) execute(ctx context.Context, report *domain.RunReport) error {
	today := report.StartedAt.In(p.settings.location).Format(time.DateOnly)

	reached, err := p.capReached(ctx, today)
	if err != nil {
		return err
	}
	if reached {
		report.Status = domain.RunCapReached
		return nil
	}

	caption := p.resolveCaption(report.StartedAt)

	if p.settings.checkToken {
		if err := p.verifyMetaToken(ctx); err != nil {
			return err
		}
	}

	if err := p.source.Open(ctx); err != nil {
		return apperrors.WrapWithCode(err, CodeSourceOpen, "open source")
	}

	tokens, err := p.platformTokens(ctx)
	if err != nil {
		return err
	}

	candidates := p.source.ListCandidates(ctx, p.settings.folder)
	p.logger.Info("Listed candidates", "count", len(candidates))
	if len(candidates) == 0 {
		report.Status = domain.RunNoFiles
		return nil
	}

	r := &run{
		caption:    caption,
		tokens:     tokens,
		candidates: candidates,
		report:     report,
	}

	switch p.settings.policy {
	case publisher.PolicyConcurrentDual:
		err = p.runConcurrent(ctx, r)
	case publisher.PolicySinglePlatformRetry:
		err = p.runSingle(ctx, r)
	case publisher.PolicyModerationAware:
		err = p.runSequential(ctx, r, true)
	default:
		err = p.runSequential(ctx, r, false)
	}
	if err != nil {
		return err
	}

	if report.Status == domain.RunPosted || report.Status == domain.RunPartial {
		p.countPost(ctx, today)
	}
	return nil
}

func (p *PublisherImpl) capReached(ctx context.Context, today string) (bool, error) {
	if p.settings.dailyCap <= 0 {
		return false, nil
	}
	entry, err := p.postLog.Get(ctx, today)
	if err != nil {
		return false, apperrors.WrapWithCode(err, CodePostLog, "read daily post log")
	}
	entry = entry.ForDate(today)
	p.logger.Info("Daily post count", "date", today, "count", entry.Count, "cap", p.settings.dailyCap)
	return entry.CapReached(p.settings.dailyCap), nil
}

func (p *PublisherImpl) countPost(ctx context.Context, today string) {
	entry, err := p.postLog.Increment(ctx, today, p.settings.dailyCap)
	switch {
	case errors.Is(err, postlog.ErrCapReached):
		p.logger.Warn("Daily cap was reached by another run", "date", today, "cap", p.settings.dailyCap)
	case err != nil:
		p.logger.Error("Failed to update daily post log", "date", today, "error", err)
		p.notifier.Send(fmt.Sprintf("⚠️ Could not update daily post count: %v", err))
	default:
		p.logger.Info("Daily post count updated", "date", entry.Date, "count", entry.Count)
	}
}

// resolveCaption reads the schedule once per run. A missing or invalid file
// falls back to the default caption.
func (p *PublisherImpl) resolveCaption(at time.Time) domain.Caption {
	day := at.In(p.settings.location).Weekday()

	captions, err := schedule.Load(p.settings.scheduleFile)
	if err != nil {
		p.logger.Warn("Caption schedule unavailable, using default caption", "file", p.settings.scheduleFile, "error", err)
	}

	caption, found := captions.Resolve(p.settings.accountKey, day, p.settings.defaultCaption)
	if err == nil && !found {
		p.logger.Warn("No caption configured for day, using default caption", "account", p.settings.accountKey, "day", day.String())
	}
	return caption
}

func (p *PublisherImpl) verifyMetaToken(ctx context.Context) error {
	info, err := p.tokens.CheckExpiry(ctx, domain.Token{Value: p.settings.metaToken})
	if err != nil {
		return apperrors.WrapWithCode(err, CodeTokenCheck, "check meta token")
	}
	checked := domain.Token{Value: p.settings.metaToken, Scope: domain.ScopeInstagram, ExpiresAt: info.ExpiresAt}
	if !info.Valid || checked.Expired(p.now()) {
		return apperrors.WrapWithCode(apperrors.ErrAuth, CodeTokenCheck, "meta token is invalid or expired")
	}
	if info.ExpiresAt != nil {
		p.logger.Info("Meta token valid", "expires_at", info.ExpiresAt.Format(time.RFC3339))
	} else {
		p.logger.Info("Meta token valid, no expiry")
	}
	return nil
}

// platformTokens fetches one token per enabled platform. Any failure is fatal.
func (p *PublisherImpl) platformTokens(ctx context.Context) (map[domain.Platform]domain.Token, error) {
	tokens := make(map[domain.Platform]domain.Token, len(p.clients))
	for _, client := range p.clients {
		pl := client.Platform()
		tok, err := p.tokens.GetAccessToken(ctx, pl.Scope())
		if err != nil {
			return nil, apperrors.WrapWithCode(err, CodePlatformToken, fmt.Sprintf("get %s token", pl))
		}
		tokens[pl] = tok
	}
	return tokens, nil
}
