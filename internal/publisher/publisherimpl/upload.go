package publisherimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/formatter"
)

// upload takes one candidate through create, processing, publish and verification
// on one platform. Errors never escape: they become the result's outcome.
func (p *PublisherImpl) upload(ctx context.Context, client platform.Client, tok domain.Token, c domain.MediaCandidate, meta *domain.MediaMetadata, caption domain.Caption) domain.Result {
	pl := client.Platform()
	res := domain.Result{Platform: pl, Outcome: domain.OutcomeFailed}

	link, err := p.source.TemporaryLink(ctx, c)
	if err != nil {
		return failed(res, fmt.Errorf("temporary link for %s: %w", c.Name, err))
	}

	mediaType := mediaTypeFor(pl, c, meta)
	p.logger.Info("Uploading", "platform", pl, "file", c.Name, "media_type", mediaType)

	job, err := client.CreateMedia(ctx, tok, platform.CreateRequest{
		Name:      c.Name,
		SourceURL: link,
		MediaType: mediaType,
		Caption:   caption,
	})
	if job == nil {
		job = domain.NewUploadJob(pl, mediaType)
	}
	res.Job = job
	if err != nil {
		return failed(res, err)
	}

	if err := client.AwaitProcessing(ctx, tok, job); err != nil {
		return failed(res, err)
	}
	if err := client.Publish(ctx, tok, job); err != nil {
		return failed(res, err)
	}

	res.Outcome = domain.OutcomeSuccess
	res.Verified = client.VerifyLive(ctx, tok, job)
	p.logger.Info("Published", "platform", pl, "file", c.Name, "post_id", job.PublishedID, "verified", res.Verified)
	return res
}

func failed(res domain.Result, err error) domain.Result {
	res.Err = err
	res.Outcome = domain.OutcomeFailed
	if apperrors.IsContentRejected(err) {
		res.Outcome = domain.OutcomeRejected
	}
	if res.Job != nil && !res.Job.Terminal() {
		_ = res.Job.Advance(domain.JobFailed)
	}
	return res
}

// attempted is true once the platform was asked to create media for the candidate.
func attempted(res domain.Result) bool {
	return res.Job != nil
}

// mediaTypeFor maps a candidate to the container type of a platform. Facebook
// takes the reel protocol only for vertical short video.
func mediaTypeFor(pl domain.Platform, c domain.MediaCandidate, meta *domain.MediaMetadata) domain.MediaType {
	if !c.IsVideo() {
		return domain.MediaTypeImage
	}
	if pl == domain.PlatformFacebook && !meta.ReelEligible() {
		return domain.MediaTypeVideo
	}
	return domain.MediaTypeReels
}

// metadata is only looked up when a platform decides on it.
func (p *PublisherImpl) metadata(ctx context.Context, c domain.MediaCandidate) *domain.MediaMetadata {
	if !c.IsVideo() || !p.uses(domain.PlatformFacebook) {
		return nil
	}
	meta, err := p.source.Metadata(ctx, c)
	if err != nil {
		p.logger.Warn("Media metadata unavailable", "file", c.Name, "error", err)
		return nil
	}
	return meta
}

func (p *PublisherImpl) uses(pl domain.Platform) bool {
	for _, c := range p.clients {
		if c.Platform() == pl {
			return true
		}
	}
	return false
}

func (p *PublisherImpl) announce(r *run, index, limit int, c domain.MediaCandidate) {
	r.report.Attempts++
	r.report.Candidate = c.Name

	total := min(limit, len(r.candidates))
	p.notifier.Send(fmt.Sprintf("🎯 Attempt %d/%d\n📤 Uploading %s\nType: %s\nSize: %s\nFiles left: %d",
		index+1, total, c.Name, kindLabel(c), formatter.FormatSize(c.SizeBytes), len(r.candidates)-index-1))
}

// record keeps a platform result in the report and the history store, and
// sends the one failure notification of the candidate on that platform.
func (p *PublisherImpl) record(ctx context.Context, r *run, c domain.MediaCandidate, res domain.Result) {
	r.report.Results = append(r.report.Results, res)
	if res.Outcome == domain.OutcomeSuccess {
		r.report.PostIDs[res.Platform] = res.PostID()
	}

	entry := domain.PublishRecord{
		FileName:  c.Name,
		Platform:  res.Platform,
		Outcome:   res.Outcome,
		PostID:    res.PostID(),
		CreatedAt: p.now(),
	}
	if res.Job != nil {
		entry.Permalink = res.Job.Permalink
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	if err := p.history.Record(ctx, entry); err != nil {
		p.logger.Warn("Failed to record publish history", "file", c.Name, "platform", res.Platform, "error", err)
	}

	switch res.Outcome {
	case domain.OutcomeRejected:
		p.logger.Warn("Content rejected", "platform", res.Platform, "file", c.Name, "error", res.Err)
		p.notifier.Send(fmt.Sprintf("🚫 %s rejected %s\n%s", res.Platform.Title(), c.Name, formatter.Truncate(res.Err.Error(), 500)))
	case domain.OutcomeFailed:
		p.logger.Error("Upload failed", "platform", res.Platform, "file", c.Name, "error", res.Err)
		p.notifier.Send(fmt.Sprintf("❌ %s upload failed for %s\n%s", res.Platform.Title(), c.Name, formatter.Truncate(res.Err.Error(), 500)))
	}
}

// remove deletes an attempted candidate. Failures are reported, never returned.
func (p *PublisherImpl) remove(ctx context.Context, r *run, c domain.MediaCandidate) {
	if err := p.source.Delete(ctx, c); err != nil {
		p.logger.Warn("Failed to delete source file", "file", c.Name, "error", err)
		p.notifier.Send(fmt.Sprintf("⚠️ Could not delete %s: %v", c.Name, err))
		return
	}
	r.report.Deleted = append(r.report.Deleted, c.Name)
	p.logger.Info("Deleted source file", "file", c.Name)
	p.notifier.Send(fmt.Sprintf("🗑️ Deleted %s from source", c.Name))
}

func kindLabel(c domain.MediaCandidate) string {
	if c.IsVideo() {
		return "video"
	}
	return "image"
}
