package internal

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/scheduler"
)

const (
	jobRefresh = "notifications.refresh"
	jobPrune   = "notifications.prune"
	jobTimeout = 30 * time.Second
)

// newScheduler registers the notification refresh and dismissal prune jobs.
// An empty schedule disables the job.
func newScheduler(cfg *Config, svc *clinic.Service, logger *slog.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger, jobTimeout)

	if cfg.Notifications.RefreshSchedule != "" {
		refresh := func(ctx context.Context) error {
			_, err := svc.RefreshNotifications(ctx, cfg.Notifications.UserEmail)
			return err
		}
		if err := s.Add(jobRefresh, cfg.Notifications.RefreshSchedule, refresh); err != nil {
			return nil, err
		}
	}

	if cfg.Notifications.PruneSchedule != "" && cfg.Notifications.Retention > 0 {
		prune := func(context.Context) error {
			n, err := svc.PruneDismissals(cfg.Notifications.Retention)
			if err == nil && n > 0 {
				logger.Info("dismissals pruned", slog.Int("removed", n))
			}
			return err
		}
		if err := s.Add(jobPrune, cfg.Notifications.PruneSchedule, prune); err != nil {
			return nil, err
		}
	}
	return s, nil
}
