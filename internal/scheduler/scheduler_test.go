package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddRejectsBadSchedule(t *testing.T) {
	s := New(quietLogger(), 0)
	if err := s.Add("bad", "every now and then", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if len(s.Entries()) != 0 {
		t.Errorf("entries = %d, want 0", len(s.Entries()))
	}
}

func TestAddReplacesSameName(t *testing.T) {
	s := New(quietLogger(), 0)
	var first, second int
	_ = s.Add("refresh", "@every 5m", func(context.Context) error { first++; return nil })
	_ = s.Add("refresh", "*/10 * * * *", func(context.Context) error { second++; return nil })

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Schedule != "*/10 * * * *" {
		t.Fatalf("entries = %+v", entries)
	}
	if err := s.RunNow("refresh"); err != nil {
		t.Fatal(err)
	}
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d, want 0, 1", first, second)
	}
}

func TestRunNowPropagatesErrorAndTimeout(t *testing.T) {
	s := New(quietLogger(), 20*time.Millisecond)
	boom := errors.New("boom")
	_ = s.Add("fail", "@hourly", func(context.Context) error { return boom })
	_ = s.Add("slow", "@hourly", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if err := s.RunNow("fail"); !errors.Is(err, boom) {
		t.Errorf("fail = %v, want boom", err)
	}
	if err := s.RunNow("slow"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("slow = %v, want deadline exceeded", err)
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestRemove(t *testing.T) {
	s := New(quietLogger(), 0)
	_ = s.Add("prune", "@daily", func(context.Context) error { return nil })
	if !s.Remove("prune") {
		t.Fatal("Remove = false, want true")
	}
	if s.Remove("prune") {
		t.Error("second Remove = true, want false")
	}
}

func TestRunFiresScheduledJob(t *testing.T) {
	s := New(quietLogger(), 0)
	var runs atomic.Int32
	_ = s.Add("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if runs.Load() < 1 {
		t.Errorf("runs = %d, want >= 1", runs.Load())
	}
}
