package instagramimpl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

type idResponse struct {
	ID string `json:"id"`
}

type statusResponse struct {
	StatusCode string `json:"status_code"`
	Status     string `json:"status"`
}

type permalinkResponse struct {
	Permalink string `json:"permalink"`
}

// Wording Instagram uses in the container status when moderation blocked the upload.
var rejectionMarkers = []string{"copyright", "intellectual property", "blocked", "restricted", "violat"}

func (ig *InstagramImpl) CreateMedia(ctx context.Context, token domain.Token, req platform.CreateRequest) (*domain.UploadJob, error) {
	job := domain.NewUploadJob(domain.PlatformInstagram, req.MediaType)

	form := url.Values{
		"access_token": {token.Value},
		"caption":      {req.Caption.Caption},
	}
	switch req.MediaType {
	case domain.MediaTypeImage:
		form.Set("image_url", req.SourceURL)
	default:
		// Instagram only accepts video through the REELS container type.
		job.MediaType = domain.MediaTypeReels
		form.Set("video_url", req.SourceURL)
		form.Set("media_type", string(domain.MediaTypeReels))
		form.Set("share_to_feed", "true")
	}

	var res idResponse
	if err := ig.graph.PostForm(ctx, "create", ig.accountID+"/media", form, &res); err != nil {
		_ = job.Advance(domain.JobFailed)
		return job, fmt.Errorf("create instagram container for %s: %w", req.Name, err)
	}
	if res.ID == "" {
		_ = job.Advance(domain.JobFailed)
		return job, fmt.Errorf("create instagram container for %s: %w", req.Name, errors.ErrTransientAPI)
	}

	job.CreationID = res.ID
	if err := job.Advance(domain.JobProcessing); err != nil {
		return job, err
	}

	ig.logger.Info("Container created", "name", req.Name, "creation_id", job.CreationID, "media_type", job.MediaType)
	return job, nil
}

func (ig *InstagramImpl) AwaitProcessing(ctx context.Context, token domain.Token, job *domain.UploadJob) error {
	if job.Status == domain.JobFinished {
		return nil
	}
	if !job.NeedsProcessing() {
		return job.Advance(domain.JobFinished)
	}

	var last statusResponse
	done, err := platform.Poll(ctx, ig.poll.StatusRetries, ig.poll.StatusInterval, func(attempt int) (bool, error) {
		query := url.Values{
			"fields":       {"status_code,status"},
			"access_token": {token.Value},
		}
		var res statusResponse
		if err := ig.graph.Get(ctx, "status", job.CreationID, query, &res); err != nil {
			return false, err
		}
		last = res
		ig.logger.Debug("Container status", "creation_id", job.CreationID, "attempt", attempt, "status_code", res.StatusCode)

		switch res.StatusCode {
		case "FINISHED":
			return true, nil
		case "ERROR", "EXPIRED":
			_ = job.Advance(domain.JobError)
			return false, processingError(job.CreationID, res)
		default:
			return false, nil
		}
	})
	if err != nil {
		_ = job.Advance(domain.JobFailed)
		return err
	}
	if !done {
		_ = job.Advance(domain.JobFailed)
		return fmt.Errorf("instagram container %s still %q after %d checks: %w",
			job.CreationID, last.StatusCode, ig.poll.StatusRetries, errors.ErrProcessingTimeout)
	}

	return job.Advance(domain.JobFinished)
}

func processingError(creationID string, res statusResponse) error {
	detail := strings.ToLower(res.Status)
	for _, marker := range rejectionMarkers {
		if strings.Contains(detail, marker) {
			return fmt.Errorf("instagram container %s rejected: %s: %w", creationID, res.Status, errors.ErrContentRejected)
		}
	}
	return fmt.Errorf("instagram container %s ended with %s: %s: %w", creationID, res.StatusCode, res.Status, errors.ErrProcessingFailed)
}

func (ig *InstagramImpl) Publish(ctx context.Context, token domain.Token, job *domain.UploadJob) error {
	if job.Status != domain.JobFinished {
		return fmt.Errorf("publish instagram container %s in state %s", job.CreationID, job.Status)
	}

	form := url.Values{
		"creation_id":  {job.CreationID},
		"access_token": {token.Value},
	}
	var res idResponse
	if err := ig.graph.PostForm(ctx, "publish", ig.accountID+"/media_publish", form, &res); err != nil {
		_ = job.Advance(domain.JobFailed)
		return fmt.Errorf("publish instagram container %s: %w", job.CreationID, err)
	}
	if res.ID == "" {
		_ = job.Advance(domain.JobFailed)
		return fmt.Errorf("publish instagram container %s: %w", job.CreationID, errors.ErrTransientAPI)
	}

	job.PublishedID = res.ID
	ig.logger.Info("Media published", "creation_id", job.CreationID, "media_id", job.PublishedID)
	return job.Advance(domain.JobPublished)
}

func (ig *InstagramImpl) VerifyLive(ctx context.Context, token domain.Token, job *domain.UploadJob) bool {
	if job.Status == domain.JobVerified {
		return true
	}

	live, err := platform.Poll(ctx, ig.poll.VerifyRetries, ig.poll.VerifyInterval, func(attempt int) (bool, error) {
		query := url.Values{
			"fields":       {"permalink"},
			"access_token": {token.Value},
		}
		var res permalinkResponse
		if err := ig.graph.Get(ctx, "verify", job.PublishedID, query, &res); err != nil {
			if ctx.Err() != nil {
				return false, err
			}
			ig.logger.Warn("Verification check failed", "media_id", job.PublishedID, "attempt", attempt, "error", err)
			return false, nil
		}
		if res.Permalink == "" {
			return false, nil
		}
		job.Permalink = res.Permalink
		return true, nil
	})
	if err != nil || !live {
		ig.logger.Warn("Media not verified", "media_id", job.PublishedID, "error", err)
		return false
	}

	_ = job.Advance(domain.JobVerified)
	ig.logger.Info("Media verified", "media_id", job.PublishedID, "permalink", job.Permalink)
	return true
}
