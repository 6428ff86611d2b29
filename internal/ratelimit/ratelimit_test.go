package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitAllowsBurst(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "instagram"); err != nil {
			t.Fatalf("Wait() #%d error = %v", i, err)
		}
	}
}

func TestWaitHonoursContext(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)
	if err := l.Wait(context.Background(), "facebook"); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "facebook"); err == nil {
		t.Fatal("second Wait() expected error once the bucket is empty")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)
	ctx := context.Background()
	if err := l.Wait(ctx, "instagram"); err != nil {
		t.Fatal(err)
	}
	if err := l.Wait(ctx, "facebook"); err != nil {
		t.Fatalf("other key should have its own bucket: %v", err)
	}
}

func TestUnlimited(t *testing.T) {
	l := NewInMemoryLimiter(0, time.Minute, 0)
	for i := 0; i < 100; i++ {
		if err := l.Wait(context.Background(), "k"); err != nil {
			t.Fatal(err)
		}
	}
}
