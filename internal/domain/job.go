package domain

import "fmt"

type MediaType string

const (
	MediaTypeReels MediaType = "REELS"
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

type JobStatus string

const (
	JobCreated    JobStatus = "CREATED"
	JobProcessing JobStatus = "PROCESSING"
	JobFinished   JobStatus = "FINISHED"
	JobError      JobStatus = "ERROR"
	JobPublished  JobStatus = "PUBLISHED"
	JobVerified   JobStatus = "VERIFIED"
	JobFailed     JobStatus = "FAILED"
)

// transitions lists the allowed moves; FAILED is reachable from every non-terminal state.
var transitions = map[JobStatus][]JobStatus{
	JobCreated:    {JobProcessing},
	JobProcessing: {JobFinished, JobError},
	JobError:      {JobFailed},
	JobFinished:   {JobPublished},
	JobPublished:  {JobVerified},
}

// UploadJob tracks one media item through a platform's processing pipeline.
// It lives for a single run.
type UploadJob struct {
	Platform    Platform
	CreationID  string
	MediaType   MediaType
	Status      JobStatus
	PublishedID string
	Permalink   string

	// SessionUpload marks jobs created through the start/upload/finish protocol.
	// Description is sent with the deferred finish call.
	SessionUpload bool
	Description   string
}

func NewUploadJob(platform Platform, mediaType MediaType) *UploadJob {
	return &UploadJob{
		Platform:  platform,
		MediaType: mediaType,
		Status:    JobCreated,
	}
}

func (j *UploadJob) Terminal() bool {
	return j.Status == JobFailed || j.Status == JobVerified
}

// Advance moves the job to the next state or reports an illegal transition.
func (j *UploadJob) Advance(to JobStatus) error {
	if to == JobFailed && !j.Terminal() {
		j.Status = JobFailed
		return nil
	}
	for _, allowed := range transitions[j.Status] {
		if allowed == to {
			j.Status = to
			return nil
		}
	}
	return fmt.Errorf("illegal job transition %s -> %s", j.Status, to)
}

// NeedsProcessing is true for video jobs; images go straight to publish.
func (j *UploadJob) NeedsProcessing() bool {
	return j.MediaType != MediaTypeImage
}
