package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

func TestRecordQuery(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	query, args, err := recordQuery(domain.PublishRecord{
		FileName:  "clip.mp4",
		Platform:  domain.PlatformInstagram,
		Outcome:   domain.OutcomeSuccess,
		PostID:    "p1",
		Permalink: "https://www.instagram.com/reel/p1/",
		CreatedAt: at,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "INSERT INTO publish_history (file_name,platform,outcome,post_id,permalink,error,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)"
	if query != want {
		t.Errorf("query = %s, want %s", query, want)
	}
	if len(args) != 7 || args[1] != "instagram" || args[2] != "SUCCESS" || args[6] != at {
		t.Errorf("args = %v", args)
	}
}

func TestLatestQuery(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  string
	}{
		{name: "explicit", limit: 5, want: "LIMIT 5"},
		{name: "default", limit: 0, want: "LIMIT 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := latestQuery(tt.limit)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(query, "SELECT id, file_name, platform, outcome, post_id, permalink, error, created_at FROM publish_history") ||
				!strings.Contains(query, "ORDER BY created_at DESC, id DESC") ||
				!strings.HasSuffix(query, tt.want) {
				t.Errorf("query = %s", query)
			}
			if len(args) != 0 {
				t.Errorf("args = %v, want none", args)
			}
		})
	}
}

func TestNoopStoresNothing(t *testing.T) {
	n := NewNoop(logger.Nop())
	if err := n.Record(context.Background(), domain.PublishRecord{FileName: "clip.mp4"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	records, err := n.Latest(context.Background(), 5)
	if err != nil || len(records) != 0 {
		t.Errorf("Latest() = %v, %v; want nothing", records, err)
	}
}
