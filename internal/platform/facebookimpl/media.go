package facebookimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/platform"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

type idResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type startResponse struct {
	VideoID   string `json:"video_id"`
	UploadURL string `json:"upload_url"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type phase struct {
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type videoStatus struct {
	VideoStatus     string `json:"video_status"`
	UploadingPhase  phase  `json:"uploading_phase"`
	ProcessingPhase phase  `json:"processing_phase"`
	PublishingPhase phase  `json:"publishing_phase"`
}

type statusResponse struct {
	Status       videoStatus `json:"status"`
	PermalinkURL string      `json:"permalink_url"`
	Link         string      `json:"link"`
}

var rejectionMarkers = []string{"copyright", "intellectual property", "violat", "restricted"}

func (fb *FacebookImpl) CreateMedia(ctx context.Context, token domain.Token, req platform.CreateRequest) (*domain.UploadJob, error) {
	job := domain.NewUploadJob(domain.PlatformFacebook, req.MediaType)
	job.Description = req.Caption.Description

	var (
		id  string
		err error
	)
	switch req.MediaType {
	case domain.MediaTypeReels:
		id, err = fb.startReelSession(ctx, token, req)
		job.SessionUpload = true
	case domain.MediaTypeImage:
		id, err = fb.createPhoto(ctx, token, req)
	default:
		id, err = fb.createVideo(ctx, token, req)
	}
	if err != nil {
		_ = job.Advance(domain.JobFailed)
		return job, fmt.Errorf("create facebook %s for %s: %w", strings.ToLower(string(job.MediaType)), req.Name, err)
	}

	job.CreationID = id
	if err := job.Advance(domain.JobProcessing); err != nil {
		return job, err
	}

	fb.logger.Info("Upload accepted", "name", req.Name, "id", id, "media_type", job.MediaType)
	return job, nil
}

// startReelSession runs the start and upload phases. The finish phase is Publish.
func (fb *FacebookImpl) startReelSession(ctx context.Context, token domain.Token, req platform.CreateRequest) (string, error) {
	form := url.Values{
		"upload_phase": {"start"},
		"access_token": {token.Value},
	}
	var start startResponse
	if err := fb.graph.PostForm(ctx, "reel start", fb.pageID+"/video_reels", form, &start); err != nil {
		return "", err
	}
	if start.VideoID == "" {
		return "", fmt.Errorf("reel start returned no video id: %w", errors.ErrTransientAPI)
	}

	uploadURL := start.UploadURL
	if uploadURL == "" {
		uploadURL = fmt.Sprintf("%s/video-upload/%s/%s", fb.ruploadURL, fb.apiVersion, start.VideoID)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "OAuth "+token.Value)
	httpReq.Header.Set("file_url", req.SourceURL)

	var uploaded successResponse
	if err := fb.graph.Do(ctx, "reel upload", httpReq, &uploaded); err != nil {
		return "", err
	}
	if !uploaded.Success {
		return "", fmt.Errorf("reel upload for video %s not acknowledged: %w", start.VideoID, errors.ErrTransientAPI)
	}
	return start.VideoID, nil
}

func (fb *FacebookImpl) createVideo(ctx context.Context, token domain.Token, req platform.CreateRequest) (string, error) {
	form := url.Values{
		"access_token": {token.Value},
		"file_url":     {req.SourceURL},
		"description":  {req.Caption.Description},
	}
	var res idResponse
	if err := fb.graph.PostForm(ctx, "video upload", fb.pageID+"/videos", form, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("video upload returned no id: %w", errors.ErrTransientAPI)
	}
	return res.ID, nil
}

func (fb *FacebookImpl) createPhoto(ctx context.Context, token domain.Token, req platform.CreateRequest) (string, error) {
	form := url.Values{
		"access_token": {token.Value},
		"url":          {req.SourceURL},
		"caption":      {req.Caption.Caption},
	}
	var res idResponse
	if err := fb.graph.PostForm(ctx, "photo upload", fb.pageID+"/photos", form, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("photo upload returned no id: %w", errors.ErrTransientAPI)
	}
	return res.ID, nil
}

func (fb *FacebookImpl) AwaitProcessing(ctx context.Context, token domain.Token, job *domain.UploadJob) error {
	if job.Status == domain.JobFinished {
		return nil
	}
	if !job.NeedsProcessing() {
		return job.Advance(domain.JobFinished)
	}

	var last videoStatus
	done, err := platform.Poll(ctx, fb.poll.StatusRetries, fb.poll.StatusInterval, func(attempt int) (bool, error) {
		query := url.Values{
			"fields":       {"status"},
			"access_token": {token.Value},
		}
		var res statusResponse
		if err := fb.graph.Get(ctx, "status", job.CreationID, query, &res); err != nil {
			return false, err
		}
		last = res.Status
		fb.logger.Debug("Video status", "video_id", job.CreationID, "attempt", attempt,
			"video_status", last.VideoStatus, "processing", last.ProcessingPhase.Status)

		if err := statusError(job.CreationID, last); err != nil {
			_ = job.Advance(domain.JobError)
			return false, err
		}
		return ready(job, last), nil
	})
	if err != nil {
		_ = job.Advance(domain.JobFailed)
		return err
	}
	if !done {
		_ = job.Advance(domain.JobFailed)
		return fmt.Errorf("facebook video %s still %q after %d checks: %w",
			job.CreationID, last.VideoStatus, fb.poll.StatusRetries, errors.ErrProcessingTimeout)
	}

	return job.Advance(domain.JobFinished)
}

// ready reports whether job may move on to Publish. A reel session stays in
// upload_complete until finish is sent, so the uploading phase is enough there.
func ready(job *domain.UploadJob, s videoStatus) bool {
	if job.SessionUpload && (s.UploadingPhase.Status == "complete" || s.VideoStatus == "upload_complete") {
		return true
	}
	return s.VideoStatus == "ready" || s.ProcessingPhase.Status == "complete"
}

func statusError(videoID string, s videoStatus) error {
	detail := ""
	if s.ProcessingPhase.Error != nil {
		detail = s.ProcessingPhase.Error.Message
	}

	if detail == "" && s.PublishingPhase.Error != nil {
		detail = s.PublishingPhase.Error.Message
	}

	switch s.VideoStatus {
	case "blocked", "rejected":
		return fmt.Errorf("facebook video %s %s: %s: %w", videoID, s.VideoStatus, detail, errors.ErrContentRejected)
	case "error", "expired":
	default:
		if s.ProcessingPhase.Status != "error" && s.UploadingPhase.Status != "error" && s.PublishingPhase.Status != "error" {
			return nil
		}
	}

	lower := strings.ToLower(detail)
	for _, marker := range rejectionMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("facebook video %s rejected: %s: %w", videoID, detail, errors.ErrContentRejected)
		}
	}
	return fmt.Errorf("facebook video %s ended with %s: %s: %w", videoID, s.VideoStatus, detail, errors.ErrProcessingFailed)
}

func (fb *FacebookImpl) Publish(ctx context.Context, token domain.Token, job *domain.UploadJob) error {
	if job.Status != domain.JobFinished {
		return fmt.Errorf("publish facebook upload %s in state %s", job.CreationID, job.Status)
	}

	if job.SessionUpload {
		form := url.Values{
			"access_token": {token.Value},
			"upload_phase": {"finish"},
			"video_id":     {job.CreationID},
			"video_state":  {"PUBLISHED"},
			"description":  {job.Description},
		}
		var res successResponse
		if err := fb.graph.PostForm(ctx, "reel finish", fb.pageID+"/video_reels", form, &res); err != nil {
			_ = job.Advance(domain.JobFailed)
			return fmt.Errorf("finish facebook reel %s: %w", job.CreationID, err)
		}
		if !res.Success {
			_ = job.Advance(domain.JobFailed)
			return fmt.Errorf("finish facebook reel %s not acknowledged: %w", job.CreationID, errors.ErrTransientAPI)
		}
	}

	// Plain videos and photos are public as soon as the upload is processed.
	// A finished reel is still processed and published by Facebook; VerifyLive waits for it.
	job.PublishedID = job.CreationID
	fb.logger.Info("Upload published", "id", job.PublishedID, "media_type", job.MediaType)
	return job.Advance(domain.JobPublished)
}

func (fb *FacebookImpl) VerifyLive(ctx context.Context, token domain.Token, job *domain.UploadJob) bool {
	if job.Status == domain.JobVerified {
		return true
	}

	fields := "permalink_url,status"
	if job.MediaType == domain.MediaTypeImage {
		fields = "link"
	}

	live, err := platform.Poll(ctx, fb.poll.VerifyRetries, fb.poll.VerifyInterval, func(attempt int) (bool, error) {
		query := url.Values{
			"fields":       {fields},
			"access_token": {token.Value},
		}
		var res statusResponse
		if err := fb.graph.Get(ctx, "verify", job.PublishedID, query, &res); err != nil {
			if ctx.Err() != nil {
				return false, err
			}
			fb.logger.Warn("Verification check failed", "id", job.PublishedID, "attempt", attempt, "error", err)
			return false, nil
		}

		link := res.PermalinkURL
		if job.MediaType == domain.MediaTypeImage {
			link = res.Link
		}
		if err := statusError(job.PublishedID, res.Status); err != nil {
			return false, err
		}
		if link == "" || !published(res.Status) {
			return false, nil
		}
		if strings.HasPrefix(link, "/") {
			link = "https://www.facebook.com" + link
		}
		job.Permalink = link
		return true, nil
	})
	if err != nil || !live {
		fb.logger.Warn("Upload not verified", "id", job.PublishedID, "error", err)
		return false
	}

	_ = job.Advance(domain.JobVerified)
	fb.logger.Info("Upload verified", "id", job.PublishedID, "permalink", job.Permalink)
	return true
}

// published is true once Facebook has nothing left to do with the video.
func published(s videoStatus) bool {
	return s.VideoStatus == "" || s.VideoStatus == "ready" || s.PublishingPhase.Status == "complete"
}
