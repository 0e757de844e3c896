package clinic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
)

// ValidateNotification checks a caller-supplied notification.
func ValidateNotification(n models.Notification) error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.Message, validation.Required, validation.Length(1, 500)),
		validation.Field(&n.Type, validation.Required, validation.In(models.NotificationTypes...)),
		validation.Field(&n.Date, validation.Required, validation.Date(time.DateOnly)),
		validation.Field(&n.UserEmail, is.Email),
	)
	if err != nil {
		return fmt.Errorf("%v: %w", err, apperr.ErrInvalid)
	}
	return nil
}

// RefreshNotifications fetches the feed for email and publishes it.
func (s *Service) RefreshNotifications(ctx context.Context, email string) ([]models.Notification, error) {
	candidates, err := s.src.Notifications(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("clinic: refresh notifications: %w", err)
	}
	live := s.notes.Publish(candidates)
	s.logger.Debug("notifications refreshed",
		slog.String("email", email),
		slog.Int("candidates", len(candidates)),
		slog.Int("live", len(live)))
	return live, nil
}

// Notifications returns the live set.
func (s *Service) Notifications() []models.Notification {
	return s.notes.Live()
}

// AddNotification validates n and pushes it onto the live set. It reports
// false when n was already live or dismissed.
func (s *Service) AddNotification(n models.Notification) (bool, error) {
	if err := ValidateNotification(n); err != nil {
		return false, err
	}
	return s.notes.Add(n), nil
}

// DismissNotification dismisses the live notification at index.
func (s *Service) DismissNotification(index int) (bool, error) {
	return s.notes.Dismiss(index)
}

// ClearNotifications empties the live set.
func (s *Service) ClearNotifications() {
	s.notes.Clear()
}

// ClearDismissed forgets every dismissal.
func (s *Service) ClearDismissed() error {
	return s.notes.ClearDismissed()
}

// PruneDismissals forgets dismissals older than retention.
func (s *Service) PruneDismissals(retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, nil
	}
	n, err := s.notes.Prune(s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("clinic: prune dismissals: %w", err)
	}
	return n, nil
}

// SubscribeNotifications registers fn for live-set changes.
func (s *Service) SubscribeNotifications(fn notify.Observer) func() {
	return s.notes.Subscribe(fn)
}
