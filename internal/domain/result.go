package domain

import "time"

type Outcome string

const (
	OutcomeSuccess  Outcome = "SUCCESS"
	OutcomeFailed   Outcome = "FAILED"
	OutcomeRejected Outcome = "REJECTED"
	OutcomeSkipped  Outcome = "SKIPPED"
)

// Result is the tagged outcome of one candidate on one platform.
type Result struct {
	Platform Platform
	Outcome  Outcome
	Job      *UploadJob
	Verified bool
	Err      error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeSkipped
}

func (r Result) PostID() string {
	if r.Job == nil {
		return ""
	}
	return r.Job.PublishedID
}

type RunStatus string

const (
	RunPosted     RunStatus = "POSTED"
	RunPartial    RunStatus = "PARTIAL"
	RunExhausted  RunStatus = "EXHAUSTED"
	RunNoFiles    RunStatus = "NO_FILES"
	RunCapReached RunStatus = "CAP_REACHED"
	RunFailed     RunStatus = "FAILED"
)

// RunReport summarises one orchestrator run.
type RunReport struct {
	Status     RunStatus           `json:"status"`
	Candidate  string              `json:"candidate,omitempty"`
	Results    []Result            `json:"-"`
	PostIDs    map[Platform]string `json:"post_ids,omitempty"`
	Attempts   int                 `json:"attempts"`
	Deleted    []string            `json:"deleted,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Error      string              `json:"error,omitempty"`
	ErrorCode  string              `json:"error_code,omitempty"`
}

// PublishRecord is one row of publish history.
type PublishRecord struct {
	ID        int       `json:"id"`
	FileName  string    `json:"file_name"`
	Platform  Platform  `json:"platform"`
	Outcome   Outcome   `json:"outcome"`
	PostID    string    `json:"post_id,omitempty"`
	Permalink string    `json:"permalink,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
