package secrets

import (
	"context"
	"fmt"
	"testing"

	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

type fakeAccessor struct {
	values map[string]string
	closed bool
}

func (f *fakeAccessor) Access(_ context.Context, name string) (string, error) {
	v, ok := f.values[name]
	if !ok {
		return "", fmt.Errorf("secret %s not found", name)
	}
	return v, nil
}

func (f *fakeAccessor) Close() error {
	f.closed = true
	return nil
}

func useAccessor(t *testing.T, a *fakeAccessor) *int {
	t.Helper()
	created := new(int)
	prev := newAccessor
	newAccessor = func(context.Context) (Accessor, error) {
		*created++
		return a, nil
	}
	t.Cleanup(func() { newAccessor = prev })
	return created
}

func TestResolveReplacesReferences(t *testing.T) {
	fake := &fakeAccessor{values: map[string]string{
		"projects/p/secrets/meta-token/versions/latest": "EAAB-token\n",
	}}
	useAccessor(t, fake)

	cfg := &config.Config{}
	cfg.Meta.Token = "gcpsm://projects/p/secrets/meta-token/versions/latest"
	cfg.Telegram.Token = "plain-token"

	if err := Resolve(context.Background(), cfg); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Meta.Token != "EAAB-token" {
		t.Errorf("Meta.Token = %q, want resolved payload", cfg.Meta.Token)
	}
	if cfg.Telegram.Token != "plain-token" {
		t.Errorf("Telegram.Token = %q, want untouched", cfg.Telegram.Token)
	}
	if !fake.closed {
		t.Error("accessor was not closed")
	}
}

func TestResolveWithoutReferencesSkipsClient(t *testing.T) {
	created := useAccessor(t, &fakeAccessor{})

	cfg := &config.Config{}
	cfg.Meta.Token = "plain"
	if err := Resolve(context.Background(), cfg); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if *created != 0 {
		t.Errorf("accessor created %d times, want 0", *created)
	}
}

func TestResolveMissingSecretIsConfigError(t *testing.T) {
	useAccessor(t, &fakeAccessor{values: map[string]string{}})

	cfg := &config.Config{}
	cfg.Dropbox.RefreshToken = "gcpsm://projects/p/secrets/missing/versions/1"

	err := Resolve(context.Background(), cfg)
	if !errors.IsConfig(err) {
		t.Fatalf("Resolve() error = %v, want config error", err)
	}
}
