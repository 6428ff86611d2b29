package tokenimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

func newProvider(t *testing.T, h http.Handler, mutate func(cfg *config.Config)) *ProviderImpl {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Dropbox.AppKey = "key"
	cfg.Dropbox.AppSecret = "secret"
	cfg.Dropbox.RefreshToken = "refresh"
	cfg.Dropbox.TokenURL = srv.URL + "/oauth2/token"
	cfg.Meta.GraphURL = srv.URL
	cfg.Meta.APIVersion = "v18.0"
	cfg.Meta.Token = "user-token"
	cfg.Meta.FacebookPageID = "page1"
	cfg.Meta.InstagramID = "ig1"
	cfg.Meta.ResolvePageToken = true
	if mutate != nil {
		mutate(cfg)
	}
	return New(Opts{Config: cfg, Logger: logger.Nop()})
}

func TestStorageTokenRefresh(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" || r.PostForm.Get("refresh_token") != "refresh" ||
			r.PostForm.Get("client_id") != "key" || r.PostForm.Get("client_secret") != "secret" {
			t.Errorf("unexpected token form %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"sl.abc","token_type":"bearer","expires_in":14400}`))
	})
	p := newProvider(t, h, nil)

	tok, err := p.GetAccessToken(context.Background(), domain.ScopeStorage)
	if err != nil {
		t.Fatalf("GetAccessToken() error = %v", err)
	}
	if tok.Value != "sl.abc" || tok.Scope != domain.ScopeStorage || tok.ExpiresAt == nil {
		t.Errorf("token = %+v", tok)
	}
}

func TestStorageTokenFailureCarriesBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"refresh token is malformed"}`))
	})
	p := newProvider(t, h, nil)

	_, err := p.GetAccessToken(context.Background(), domain.ScopeStorage)
	if !errors.IsAuth(err) {
		t.Fatalf("error = %v, want auth error", err)
	}
	if got := err.Error(); !strings.Contains(got, "refresh token is malformed") || !strings.Contains(got, "400") {
		t.Errorf("error %q should carry status and body", got)
	}
}

func TestPageTokenByInstagramAccount(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v18.0/me/accounts" || r.URL.Query().Get("access_token") != "user-token" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"data":[
			{"id":"other","access_token":"other-token"},
			{"id":"page9","access_token":"page-token","instagram_business_account":{"id":"ig1"}}
		]}`))
	})
	p := newProvider(t, h, func(cfg *config.Config) { cfg.Meta.FacebookPageID = "" })

	tok, err := p.GetAccessToken(context.Background(), domain.ScopeInstagram)
	if err != nil {
		t.Fatalf("GetAccessToken() error = %v", err)
	}
	if tok.Value != "page-token" || tok.Scope != domain.ScopeInstagram {
		t.Errorf("token = %+v", tok)
	}
}

func TestPageTokenFollowsPaging(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			next := "http://" + r.Host + "/v18.0/me/accounts?after=cursor&access_token=user-token"
			_, _ = w.Write([]byte(`{"data":[{"id":"other","access_token":"x"}],"paging":{"next":"` + next + `"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"page1","access_token":"page-token"}]}`))
	})
	p := newProvider(t, h, nil)

	tok, err := p.GetAccessToken(context.Background(), domain.ScopeFacebook)
	if err != nil {
		t.Fatalf("GetAccessToken() error = %v", err)
	}
	if tok.Value != "page-token" {
		t.Errorf("token = %q, want page-token", tok.Value)
	}
}

func TestPageTokenFallbackNotFound(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v18.0/me/accounts":
			_, _ = w.Write([]byte(`{"data":[]}`))
		case "/v18.0/page1":
			_, _ = w.Write([]byte(`{"id":"page1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	p := newProvider(t, h, nil)

	_, err := p.GetAccessToken(context.Background(), domain.ScopeFacebook)
	if !errors.IsAuth(err) || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error = %v, want auth not found", err)
	}
}

func TestPageTokenExchangeFailed(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token","code":190}}`))
	})
	p := newProvider(t, h, nil)

	_, err := p.GetAccessToken(context.Background(), domain.ScopeInstagram)
	if !errors.IsAuth(err) || !strings.Contains(err.Error(), "exchange failed") {
		t.Fatalf("error = %v, want auth exchange failed", err)
	}
}

func TestUserTokenWhenResolutionDisabled(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL)
	})
	p := newProvider(t, h, func(cfg *config.Config) { cfg.Meta.ResolvePageToken = false })

	tok, err := p.GetAccessToken(context.Background(), domain.ScopeInstagram)
	if err != nil || tok.Value != "user-token" {
		t.Fatalf("GetAccessToken() = %+v, %v", tok, err)
	}
}

func TestCheckExpiry(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/v18.0/debug_token" || q.Get("input_token") != "page-token" || q.Get("access_token") != "app|secret" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"data":{"is_valid":true,"expires_at":1900000000,"scopes":["pages_manage_posts"]}}`))
	})
	p := newProvider(t, h, func(cfg *config.Config) { cfg.Meta.AppToken = "app|secret" })

	info, err := p.CheckExpiry(context.Background(), domain.Token{Value: "page-token"})
	if err != nil {
		t.Fatalf("CheckExpiry() error = %v", err)
	}
	if !info.Valid || info.ExpiresAt == nil || info.ExpiresAt.Unix() != 1900000000 {
		t.Errorf("info = %+v", info)
	}
}

func TestCheckExpiryNeverExpires(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"is_valid":false,"expires_at":0,"error":{"message":"Session has expired"}}}`))
	})
	p := newProvider(t, h, nil)

	info, err := p.CheckExpiry(context.Background(), domain.Token{Value: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if info.Valid || info.ExpiresAt != nil {
		t.Errorf("info = %+v", info)
	}
}
