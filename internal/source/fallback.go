package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
)

// Fallback serves reads from primary and substitutes secondary's data when
// primary fails. Reads never fail unless both do. Writes go to primary only.
type Fallback struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
	now       func() time.Time
}

// NewFallback wraps primary with secondary as the substitute.
func NewFallback(primary, secondary Source, logger *slog.Logger, now func() time.Time) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Fallback{primary: primary, secondary: secondary, logger: logger, now: now}
}

func withFallback[T any](f *Fallback, op string, primary, secondary func() (T, error)) (T, error) {
	v, err := primary()
	if err == nil {
		return v, nil
	}
	f.logger.Warn("source: backend failed, using fallback data",
		slog.String("op", op),
		slog.String("error", err.Error()))
	return secondary()
}

func (f *Fallback) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return withFallback(f, "appointments",
		func() ([]models.Appointment, error) { return f.primary.Appointments(ctx) },
		func() ([]models.Appointment, error) { return f.secondary.Appointments(ctx) })
}

func (f *Fallback) Pets(ctx context.Context) ([]models.Pet, error) {
	return withFallback(f, "pets",
		func() ([]models.Pet, error) { return f.primary.Pets(ctx) },
		func() ([]models.Pet, error) { return f.secondary.Pets(ctx) })
}

func (f *Fallback) Clients(ctx context.Context) ([]models.Client, error) {
	return withFallback(f, "clients",
		func() ([]models.Client, error) { return f.primary.Clients(ctx) },
		func() ([]models.Client, error) { return f.secondary.Clients(ctx) })
}

func (f *Fallback) Doctors(ctx context.Context) ([]models.Doctor, error) {
	return withFallback(f, "doctors",
		func() ([]models.Doctor, error) { return f.primary.Doctors(ctx) },
		func() ([]models.Doctor, error) { return f.secondary.Doctors(ctx) })
}

func (f *Fallback) Documents(ctx context.Context, petID int) ([]models.Document, error) {
	return withFallback(f, "documents",
		func() ([]models.Document, error) { return f.primary.Documents(ctx, petID) },
		func() ([]models.Document, error) { return f.secondary.Documents(ctx, petID) })
}

// Notifications tries the user feed, then the general feed, then generates
// notifications from the (possibly substituted) appointment list.
func (f *Fallback) Notifications(ctx context.Context, email string) ([]models.Notification, error) {
	out, err := f.primary.Notifications(ctx, email)
	if err == nil {
		return out, nil
	}
	f.logger.Warn("source: user notifications failed",
		slog.String("email", email),
		slog.String("error", err.Error()))

	if email != "" {
		if out, err = f.primary.Notifications(ctx, ""); err == nil {
			return out, nil
		}
		f.logger.Warn("source: general notifications failed", slog.String("error", err.Error()))
	}

	appts, err := f.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	return notify.Upcoming(ForUser(appts, email), f.now()), nil
}

// AdminNotifications falls back to notifications generated from today's
// appointments.
func (f *Fallback) AdminNotifications(ctx context.Context) ([]models.Notification, error) {
	return withFallback(f, "admin_notifications",
		func() ([]models.Notification, error) { return f.primary.AdminNotifications(ctx) },
		func() ([]models.Notification, error) {
			appts, err := f.Appointments(ctx)
			if err != nil {
				return nil, err
			}
			return notify.Admin(appts, f.now()), nil
		})
}

func (f *Fallback) UserProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	return withFallback(f, "user_profile",
		func() (*models.UserProfile, error) { return f.primary.UserProfile(ctx, email) },
		func() (*models.UserProfile, error) { return f.secondary.UserProfile(ctx, email) })
}

// Stats falls back to counters aggregated from the entity lists.
func (f *Fallback) Stats(ctx context.Context) (*models.AdminStats, error) {
	return withFallback(f, "stats",
		func() (*models.AdminStats, error) { return f.primary.Stats(ctx) },
		func() (*models.AdminStats, error) {
			clients, err := f.Clients(ctx)
			if err != nil {
				return nil, err
			}
			appts, err := f.Appointments(ctx)
			if err != nil {
				return nil, err
			}
			pets, err := f.Pets(ctx)
			if err != nil {
				return nil, err
			}
			return ComputeStats(clients, appts, pets, f.now()), nil
		})
}

// UpdateAppointmentStatus has no substitute. Client errors from the backend
// pass through; anything else is reported as apperr.ErrUnavailable.
func (f *Fallback) UpdateAppointmentStatus(ctx context.Context, id int, status models.AppointmentStatus) error {
	err := f.primary.UpdateAppointmentStatus(ctx, id, status)
	if err == nil || errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalid) {
		return err
	}
	return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
}

var _ Source = (*Fallback)(nil)
