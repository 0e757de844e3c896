package internal

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/kv"
	"github.com/starford/vetdesk/internal/notify"
	"github.com/starford/vetdesk/internal/source"
)

func jobService() *clinic.Service {
	now := func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }
	fixture := source.NewFixture(source.DefaultDataset(), now)
	return clinic.NewService(fixture, notify.New(kv.NewMemory(), notify.WithClock(now)), clinic.WithClock(now))
}

func TestNewSchedulerRegistersJobs(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notifications.UserEmail = "sarah.johnson@email.com"
	svc := jobService()

	s, err := newScheduler(cfg, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	entries := s.Entries()
	if len(entries) != 2 || entries[0].Name != jobPrune || entries[1].Name != jobRefresh {
		t.Fatalf("entries = %+v", entries)
	}

	if err := s.RunNow(jobRefresh); err != nil {
		t.Fatal(err)
	}
	if n := len(svc.Notifications()); n != 1 {
		t.Errorf("live after refresh = %d, want 1", n)
	}
	if err := s.RunNow(jobPrune); err != nil {
		t.Fatal(err)
	}
}

func TestNewSchedulerSkipsDisabledJobs(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notifications.RefreshSchedule = ""
	cfg.Notifications.Retention = 0

	s, err := newScheduler(cfg, jobService(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(s.Entries()); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

func TestNewSchedulerBadSchedule(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notifications.RefreshSchedule = "whenever"
	if _, err := newScheduler(cfg, jobService(), slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
