package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/orgball2608/reel-publisher-bot/pkg/retry"
)

func newTestClient(baseURL string) *Client {
	return New(Opts{
		BaseURL:  baseURL,
		Platform: "instagram",
		Logger:   logger.Nop(),
		Retry: retry.Config{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1,
		},
	})
}

func TestPostFormDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ig1/media" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("media_type") != "REELS" {
			t.Errorf("media_type = %q", r.PostForm.Get("media_type"))
		}
		_, _ = w.Write([]byte(`{"id":"c-1"}`))
	}))
	defer srv.Close()

	var out struct {
		ID string `json:"id"`
	}
	form := url.Values{"media_type": {"REELS"}}
	if err := newTestClient(srv.URL).PostForm(context.Background(), "create", "/ig1/media", form, &out); err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}
	if out.ID != "c-1" {
		t.Errorf("id = %q, want c-1", out.ID)
	}
}

func TestErrorEnvelopeParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190,"error_subcode":463,"fbtrace_id":"abc"}}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).PostForm(context.Background(), "publish", "/ig1/media_publish", url.Values{}, nil)
	var apiErr *apperrors.APIError
	if !apperrors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != 190 || apiErr.Subcode != 463 || apiErr.TraceID != "abc" || apiErr.StatusCode != 400 {
		t.Errorf("unexpected api error %+v", apiErr)
	}
	if !apperrors.IsAuth(err) {
		t.Error("code 190 should classify as auth error")
	}
}

func TestPostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).PostForm(context.Background(), "create", "/ig1/media", url.Values{}, nil)
	if !apperrors.IsTransientAPI(err) {
		t.Fatalf("error = %v, want transient api error", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if r.URL.Query().Get("fields") != "status_code" {
			t.Errorf("fields = %q", r.URL.Query().Get("fields"))
		}
		_, _ = w.Write([]byte(`{"status_code":"FINISHED"}`))
	}))
	defer srv.Close()

	var out struct {
		StatusCode string `json:"status_code"`
	}
	err := newTestClient(srv.URL).Get(context.Background(), "status", "c-1", url.Values{"fields": {"status_code"}}, &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out.StatusCode != "FINISHED" || calls.Load() != 3 {
		t.Errorf("status = %q after %d calls", out.StatusCode, calls.Load())
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Get(context.Background(), "status", "c-1", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDoSendsPreparedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "OAuth tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := newTestClient("http://unused.invalid")
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/video-upload/v18.0/vid", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "OAuth tok")
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.Do(context.Background(), "upload", req, &out); err != nil || !out.Success {
		t.Fatalf("Do() = %v, success=%v", err, out.Success)
	}
}

func TestResolve(t *testing.T) {
	c := newTestClient("https://graph.example.com/v18.0/")
	if got := c.resolve("/me/accounts", url.Values{"fields": {"id"}}); got != "https://graph.example.com/v18.0/me/accounts?fields=id" {
		t.Errorf("resolve relative = %q", got)
	}
	if got := c.resolve("https://rupload.example.com/x", nil); got != "https://rupload.example.com/x" {
		t.Errorf("resolve absolute = %q", got)
	}
}
