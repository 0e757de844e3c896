// Package source provides the clinic data sources: the REST backend, a
// deterministic fixture dataset, and a decorator that falls back from the
// former to the latter.
package source

import (
	"context"
	"time"

	"github.com/starford/vetdesk/internal/models"
)

// Source is where clinic entities come from.
type Source interface {
	Appointments(ctx context.Context) ([]models.Appointment, error)
	Pets(ctx context.Context) ([]models.Pet, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Doctors(ctx context.Context) ([]models.Doctor, error)
	Documents(ctx context.Context, petID int) ([]models.Document, error)
	// Notifications returns the feed for email, or the general feed when
	// email is empty.
	Notifications(ctx context.Context, email string) ([]models.Notification, error)
	AdminNotifications(ctx context.Context) ([]models.Notification, error)
	UserProfile(ctx context.Context, email string) (*models.UserProfile, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
	UpdateAppointmentStatus(ctx context.Context, id int, status models.AppointmentStatus) error
}

// ComputeStats aggregates dashboard counters. Today's counters consider
// appointments dated on the day of now.
func ComputeStats(clients []models.Client, appts []models.Appointment, pets []models.Pet, now time.Time) *models.AdminStats {
	today := now.Format(time.DateOnly)
	st := &models.AdminStats{
		TotalUsers:        len(clients),
		TotalAppointments: len(appts),
		TotalPets:         len(pets),
	}
	for _, a := range appts {
		if a.Date != today {
			continue
		}
		st.TodayAppointments++
		switch a.Status {
		case models.StatusPending:
			st.PendingAppointments++
		case models.StatusCompleted:
			st.CompletedAppointments++
		}
	}
	return st
}

// ForUser returns the appointments booked under email. An empty email
// returns all of them.
func ForUser(appts []models.Appointment, email string) []models.Appointment {
	if email == "" {
		return appts
	}
	out := make([]models.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out
}
