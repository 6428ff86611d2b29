package publisherimpl

import (
	"context"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"golang.org/x/sync/errgroup"
)

// runSequential posts to the primary platform and, on success, to the secondary.
// The file is deleted only when both succeed; a half-posted candidate stops the run.
// With moderation set, a rejected candidate is deleted and the next one is tried.
func (p *PublisherImpl) runSequential(ctx context.Context, r *run, moderation bool) error {
	limit := p.settings.maxAttempts
	if moderation {
		limit = p.settings.maxFilesToCheck
	}

	for i, c := range r.candidates {
		if i >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.announce(r, i, limit, c)
		meta := p.metadata(ctx, c)

		first := p.upload(ctx, p.primary(), r.tokens[p.primary().Platform()], c, meta, r.caption)
		p.record(ctx, r, c, first)
		if !first.OK() {
			if moderation && first.Outcome == domain.OutcomeRejected {
				p.remove(ctx, r, c)
			}
			continue
		}

		second, ok := p.secondaryResult(ctx, r, c, meta)
		if ok {
			p.record(ctx, r, c, second)
		}
		if !ok || second.OK() {
			p.remove(ctx, r, c)
			r.report.Status = domain.RunPosted
			return nil
		}
		r.report.Status = domain.RunPartial
		return nil
	}

	r.report.Status = domain.RunExhausted
	return nil
}

// runConcurrent uploads each candidate to both platforms at once. Each worker
// fetches its own source link and uses its own copy of the token.
func (p *PublisherImpl) runConcurrent(ctx context.Context, r *run) error {
	limit := p.settings.maxAttempts

	for i, c := range r.candidates {
		if i >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.announce(r, i, limit, c)
		meta := p.metadata(ctx, c)

		var (
			first, second domain.Result
			hasSecond     bool
			g             errgroup.Group
		)
		g.Go(func() error {
			first = p.upload(ctx, p.primary(), r.tokens[p.primary().Platform()], c, meta, r.caption)
			return nil
		})
		g.Go(func() error {
			second, hasSecond = p.secondaryResult(ctx, r, c, meta)
			return nil
		})
		_ = g.Wait()

		p.record(ctx, r, c, first)
		if hasSecond {
			p.record(ctx, r, c, second)
		}

		switch {
		case first.OK() && (!hasSecond || second.OK()):
			p.remove(ctx, r, c)
			r.report.Status = domain.RunPosted
			return nil
		case first.Outcome == domain.OutcomeSuccess || second.Outcome == domain.OutcomeSuccess:
			r.report.Status = domain.RunPartial
			return nil
		}
	}

	r.report.Status = domain.RunExhausted
	return nil
}

// runSingle posts to the primary platform only. Every attempted candidate is
// deleted whatever the outcome.
func (p *PublisherImpl) runSingle(ctx context.Context, r *run) error {
	limit := p.settings.maxAttempts

	for i, c := range r.candidates {
		if i >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.announce(r, i, limit, c)
		meta := p.metadata(ctx, c)

		res := p.upload(ctx, p.primary(), r.tokens[p.primary().Platform()], c, meta, r.caption)
		p.record(ctx, r, c, res)
		if attempted(res) {
			p.remove(ctx, r, c)
		}
		if res.OK() {
			r.report.Status = domain.RunPosted
			return nil
		}
	}

	r.report.Status = domain.RunExhausted
	return nil
}

// secondaryResult runs the secondary platform for c. ok is false when only
// one platform is configured.
func (p *PublisherImpl) secondaryResult(ctx context.Context, r *run, c domain.MediaCandidate, meta *domain.MediaMetadata) (domain.Result, bool) {
	client := p.secondary()
	if client == nil {
		return domain.Result{}, false
	}
	if p.settings.secondaryVideosOnly && !c.IsVideo() {
		p.logger.Info("Secondary platform takes videos only, skipping", "platform", client.Platform(), "file", c.Name)
		return domain.Result{Platform: client.Platform(), Outcome: domain.OutcomeSkipped}, true
	}
	return p.upload(ctx, client, r.tokens[client.Platform()], c, meta, r.caption), true
}
