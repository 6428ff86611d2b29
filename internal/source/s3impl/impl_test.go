package s3impl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

const listing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
<Name>media</Name><Prefix>posts/</Prefix><KeyCount>3</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>
<Contents><Key>posts/clip.mp4</Key><Size>1048576</Size></Contents>
<Contents><Key>posts/readme.txt</Key><Size>3</Size></Contents>
<Contents><Key>posts/photo.png</Key><Size>2048</Size></Contents>
</ListBucketResult>`

type bucketStub struct {
	mu       sync.Mutex
	deleted  []string
	listFail bool
}

func (b *bucketStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/media":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Path == "/media" && r.URL.Query().Get("list-type") == "2":
		b.mu.Lock()
		fail := b.listFail
		b.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
			return
		}
		if r.URL.Query().Get("prefix") != "posts/" {
			http.Error(w, "bad prefix "+r.URL.Query().Get("prefix"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(listing))
	case r.Method == http.MethodDelete:
		b.mu.Lock()
		b.deleted = append(b.deleted, r.URL.Path)
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Send(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func openStub(t *testing.T, stub *bucketStub) (*S3Impl, *recorder) {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.S3.Bucket = "media"
	cfg.S3.Region = "auto"
	cfg.S3.Endpoint = srv.URL
	cfg.S3.AccessKey = "AKID"
	cfg.S3.SecretKey = "SECRET"

	rec := &recorder{}
	s := New(Opts{Config: cfg, Notifier: rec, Logger: logger.Nop()})
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, rec
}

func TestListPresignDelete(t *testing.T) {
	stub := &bucketStub{}
	s, _ := openStub(t, stub)
	ctx := context.Background()

	got := s.ListCandidates(ctx, "/posts")
	if len(got) != 2 {
		t.Fatalf("candidates = %+v, want 2", got)
	}
	if got[0].Name != "clip.mp4" || got[0].Location != "posts/clip.mp4" || got[0].SizeBytes != 1048576 {
		t.Errorf("first = %+v", got[0])
	}

	link, err := s.TemporaryLink(ctx, got[0])
	if err != nil {
		t.Fatalf("TemporaryLink() error = %v", err)
	}
	if !strings.Contains(link, "/media/posts/clip.mp4") || !strings.Contains(link, "X-Amz-Signature") {
		t.Errorf("link = %s", link)
	}

	if err := s.Delete(ctx, got[0]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.deleted) != 1 || stub.deleted[0] != "/media/posts/clip.mp4" {
		t.Errorf("deleted = %v", stub.deleted)
	}
}

func TestListFailsSoft(t *testing.T) {
	stub := &bucketStub{listFail: true}
	s, rec := openStub(t, stub)

	if got := s.ListCandidates(context.Background(), "posts"); len(got) != 0 {
		t.Fatalf("candidates = %+v, want none", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.messages) != 1 {
		t.Errorf("notifications = %v, want 1", rec.messages)
	}
}

func TestOpenRequiresBucket(t *testing.T) {
	s := New(Opts{Config: &config.Config{}, Notifier: &recorder{}, Logger: logger.Nop()})
	if err := s.Open(context.Background()); !errors.IsConfig(err) {
		t.Fatalf("Open() error = %v, want config error", err)
	}
}
