package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollStopsWhenDone(t *testing.T) {
	calls := 0
	done, err := Poll(context.Background(), 5, time.Millisecond, func(attempt int) (bool, error) {
		calls++
		return attempt == 2, nil
	})
	if err != nil || !done {
		t.Fatalf("Poll() = %v, %v; want true, nil", done, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPollExhausts(t *testing.T) {
	calls := 0
	done, err := Poll(context.Background(), 3, time.Millisecond, func(int) (bool, error) {
		calls++
		return false, nil
	})
	if err != nil || done {
		t.Fatalf("Poll() = %v, %v; want false, nil", done, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPollReturnsCheckError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Poll(context.Background(), 3, time.Millisecond, func(int) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Poll() error = %v, want %v", err, boom)
	}
}

func TestPollHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Poll(ctx, 3, time.Hour, func(int) (bool, error) { return false, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll() error = %v, want context.Canceled", err)
	}
}

func TestPollConfigWithDefaults(t *testing.T) {
	def := PollConfig{StatusRetries: 20, StatusInterval: 5 * time.Second, VerifyRetries: 5, VerifyInterval: 5 * time.Second}
	got := PollConfig{StatusRetries: 2}.WithDefaults(def)
	if got.StatusRetries != 2 || got.StatusInterval != 5*time.Second || got.VerifyRetries != 5 {
		t.Errorf("WithDefaults() = %+v", got)
	}
}
