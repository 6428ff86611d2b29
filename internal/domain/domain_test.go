package domain

import (
	"testing"
	"time"
)

func TestKindFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   MediaKind
		wantOK bool
	}{
		{"clip.mp4", MediaKindVideo, true},
		{"CLIP.MOV", MediaKindVideo, true},
		{"photo.jpg", MediaKindImage, true},
		{"photo.JPEG", MediaKindImage, true},
		{"art.png", MediaKindImage, true},
		{"notes.txt", "", false},
		{"archive.mkv", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindFromName(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("KindFromName(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReelEligible(t *testing.T) {
	tests := []struct {
		name string
		meta *MediaMetadata
		want bool
	}{
		{"unknown", nil, false},
		{"vertical hd", &MediaMetadata{Width: 1080, Height: 1920, Duration: 30 * time.Second}, true},
		{"unknown duration", &MediaMetadata{Width: 720, Height: 1280}, true},
		{"landscape", &MediaMetadata{Width: 1920, Height: 1080, Duration: 30 * time.Second}, false},
		{"too small", &MediaMetadata{Width: 360, Height: 640, Duration: 30 * time.Second}, false},
		{"square", &MediaMetadata{Width: 1080, Height: 1080}, false},
		{"too long", &MediaMetadata{Width: 1080, Height: 1920, Duration: 3 * time.Minute}, false},
		{"too short", &MediaMetadata{Width: 1080, Height: 1920, Duration: time.Second}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.ReelEligible(); got != tt.want {
				t.Errorf("ReelEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUploadJobAdvance(t *testing.T) {
	job := NewUploadJob(PlatformInstagram, MediaTypeReels)
	for _, to := range []JobStatus{JobProcessing, JobFinished, JobPublished, JobVerified} {
		if err := job.Advance(to); err != nil {
			t.Fatalf("Advance(%s) error = %v", to, err)
		}
	}
	if !job.Terminal() {
		t.Error("verified job should be terminal")
	}
	if err := job.Advance(JobFailed); err == nil {
		t.Error("terminal job must not move to FAILED")
	}
}

func TestUploadJobNeverReentersProcessing(t *testing.T) {
	job := NewUploadJob(PlatformInstagram, MediaTypeReels)
	_ = job.Advance(JobProcessing)
	_ = job.Advance(JobFinished)
	if err := job.Advance(JobProcessing); err == nil {
		t.Fatal("FINISHED -> PROCESSING must be rejected")
	}
	if job.Status != JobFinished {
		t.Errorf("status = %s, want FINISHED", job.Status)
	}
}

func TestUploadJobFailsFromAnyState(t *testing.T) {
	for _, from := range []JobStatus{JobCreated, JobProcessing, JobError, JobFinished, JobPublished} {
		job := &UploadJob{Status: from}
		if err := job.Advance(JobFailed); err != nil {
			t.Errorf("Advance(FAILED) from %s error = %v", from, err)
		}
	}
}

func TestUploadJobSkipsPublishBeforeFinish(t *testing.T) {
	job := NewUploadJob(PlatformInstagram, MediaTypeReels)
	_ = job.Advance(JobProcessing)
	if err := job.Advance(JobPublished); err == nil {
		t.Error("PROCESSING -> PUBLISHED must be rejected")
	}
}

func TestDailyPostLog(t *testing.T) {
	log := DailyPostLog{Date: "2026-10-17", Count: 4}
	if got := log.ForDate("2026-10-18"); got.Count != 0 || got.Date != "2026-10-18" {
		t.Errorf("ForDate() = %+v, want reset", got)
	}
	today := DailyPostLog{Date: "2026-10-18", Count: 4}
	if !today.ForDate("2026-10-18").CapReached(4) {
		t.Error("CapReached(4) = false, want true")
	}
	if today.CapReached(0) {
		t.Error("zero cap must disable the check")
	}
}

func TestCaptionConfigResolve(t *testing.T) {
	cfg := CaptionConfig{
		"acct": {
			"Monday":  {Caption: "mon", Description: "mon desc"},
			"Tuesday": {Caption: "tue"},
		},
	}
	tests := []struct {
		name      string
		account   string
		day       time.Weekday
		want      Caption
		wantFound bool
	}{
		{"full entry", "acct", time.Monday, Caption{"mon", "mon desc"}, true},
		{"description falls back to caption", "acct", time.Tuesday, Caption{"tue", "tue"}, true},
		{"missing day", "acct", time.Sunday, Caption{"def", "def"}, false},
		{"missing account", "other", time.Monday, Caption{"def", "def"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := cfg.Resolve(tt.account, tt.day, "def")
			if got != tt.want || found != tt.wantFound {
				t.Errorf("Resolve() = %+v, %v; want %+v, %v", got, found, tt.want, tt.wantFound)
			}
		})
	}
}
