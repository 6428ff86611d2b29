package gcsimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

type gcsStub struct {
	mu      sync.Mutex
	deleted []string
}

func (s *gcsStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/storage/v1/b/media":
		_, _ = w.Write([]byte(`{"kind":"storage#bucket","name":"media"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/storage/v1/b/media/o":
		if r.URL.Query().Get("prefix") != "posts/" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"kind":"storage#objects","items":[
			{"kind":"storage#object","bucket":"media","name":"posts/clip.mp4","size":"2048"},
			{"kind":"storage#object","bucket":"media","name":"posts/skip.gif","size":"10"}
		]}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/storage/v1/b/media/o/"):
		s.mu.Lock()
		s.deleted = append(s.deleted, strings.TrimPrefix(r.URL.Path, "/storage/v1/b/media/o/"))
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
	}
}

type recorder struct{}

func (recorder) Send(string) {}

func TestListAndDelete(t *testing.T) {
	stub := &gcsStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.GCS.Bucket = "media"
	cfg.GCS.Endpoint = srv.URL + "/storage/v1/"

	g := New(Opts{Config: cfg, Notifier: recorder{}, Logger: logger.Nop()})
	ctx := context.Background()
	if err := g.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })

	got := g.ListCandidates(ctx, "posts")
	if len(got) != 1 || got[0].Name != "clip.mp4" || got[0].Location != "posts/clip.mp4" || got[0].SizeBytes != 2048 {
		t.Fatalf("candidates = %+v", got)
	}

	if err := g.Delete(ctx, got[0]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.deleted) != 1 || stub.deleted[0] != "posts/clip.mp4" {
		t.Errorf("deleted = %v", stub.deleted)
	}
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want *domain.MediaMetadata
	}{
		{name: "missing", in: nil},
		{name: "partial", in: map[string]string{"width": "1080"}},
		{name: "no duration", in: map[string]string{"width": "720", "height": "1280"}, want: &domain.MediaMetadata{Width: 720, Height: 1280}},
		{
			name: "full",
			in:   map[string]string{"width": "1080", "height": "1920", "duration": "12.5"},
			want: &domain.MediaMetadata{Width: 1080, Height: 1920, Duration: 12500 * time.Millisecond},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMetadata(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("parseMetadata() = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("parseMetadata() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenReusesClient(t *testing.T) {
	srv := httptest.NewServer(&gcsStub{})
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.GCS.Bucket = "media"
	cfg.GCS.Endpoint = srv.URL + "/storage/v1/"

	g := New(Opts{Config: cfg, Notifier: recorder{}, Logger: logger.Nop()})
	ctx := context.Background()
	if err := g.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	first := g.client
	if err := g.Open(ctx); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	if g.client != first {
		t.Error("second Open() created a new client")
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if g.client != nil {
		t.Error("Close() kept the client")
	}
	if err := g.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
