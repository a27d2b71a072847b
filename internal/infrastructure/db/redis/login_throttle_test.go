package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestKey(t *testing.T) {
	if got := key("alice"); got != "login_failures:alice" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewLoginThrottle_Defaults(t *testing.T) {
	th := NewLoginThrottle(nil, 0, 0)
	if th.maxAttempts != defaultMaxAttempts || th.window != defaultWindow {
		t.Fatalf("unexpected defaults: %d %s", th.maxAttempts, th.window)
	}
}

func newTestThrottle(t *testing.T, maxAttempts int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, maxAttempts, window), mr
}

func TestLoginThrottle_LimitAndReset(t *testing.T) {
	th, mr := newTestThrottle(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := th.Allowed(ctx, "alice")
		if err != nil || !ok {
			t.Fatalf("attempt %d: expected allowed, got %v %v", i, ok, err)
		}
		if err := th.RecordFailure(ctx, "alice"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if ok, err := th.Allowed(ctx, "alice"); err != nil || ok {
		t.Fatalf("expected throttled after max failures, got %v %v", ok, err)
	}
	if got, _ := mr.Get("login_failures:alice"); got != "2" {
		t.Fatalf("expected counter 2, got %q", got)
	}
	if ttl := mr.TTL("login_failures:alice"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %s", ttl)
	}
	if ok, _ := th.Allowed(ctx, "bob"); !ok {
		t.Fatal("other usernames must not be throttled")
	}

	if err := th.Reset(ctx, "alice"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if mr.Exists("login_failures:alice") {
		t.Fatal("expected counter removed after reset")
	}
	if ok, _ := th.Allowed(ctx, "alice"); !ok {
		t.Fatal("expected allowed after reset")
	}
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	th, mr := newTestThrottle(t, 1, time.Minute)
	ctx := context.Background()

	if err := th.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ok, _ := th.Allowed(ctx, "alice"); ok {
		t.Fatal("expected throttled inside the window")
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, err := th.Allowed(ctx, "alice"); err != nil || !ok {
		t.Fatalf("expected allowed after window, got %v %v", ok, err)
	}
}

func TestLoginThrottle_FailureRestartsWindow(t *testing.T) {
	th, mr := newTestThrottle(t, 5, time.Minute)
	ctx := context.Background()

	if err := th.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record: %v", err)
	}
	mr.FastForward(40 * time.Second)
	if err := th.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ttl := mr.TTL("login_failures:alice"); ttl != time.Minute {
		t.Fatalf("expected window restarted to 1m, got %s", ttl)
	}
}

func TestLoginThrottle_ServerErrors(t *testing.T) {
	th, mr := newTestThrottle(t, 2, time.Minute)
	ctx := context.Background()

	mr.SetError("ERR store offline")
	if _, err := th.Allowed(ctx, "alice"); err == nil {
		t.Fatal("expected error from Allowed")
	}
	if err := th.RecordFailure(ctx, "alice"); err == nil {
		t.Fatal("expected error from RecordFailure")
	}
	if err := th.Reset(ctx, "alice"); err == nil {
		t.Fatal("expected error from Reset")
	}

	mr.SetError("")
	if err := mr.Set("login_failures:alice", "not-a-number"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := th.Allowed(ctx, "alice"); err == nil {
		t.Fatal("expected parse error for a corrupt counter")
	}
}
