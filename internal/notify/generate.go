package notify

import (
	"fmt"
	"time"

	"github.com/starford/vetdesk/internal/models"
)

// UpcomingHorizon is how far ahead Upcoming looks for appointments.
const UpcomingHorizon = 7

// Upcoming builds client notifications for appointments in the next
// UpcomingHorizon days: a reminder for tomorrow's and an info entry for each
// one within the horizon. Notifications are dated today.
func Upcoming(appts []models.Appointment, now time.Time) []models.Notification {
	today := dayOf(now)
	stamp := today.Format(time.DateOnly)

	var out []models.Notification
	for _, a := range appts {
		day, err := time.Parse(time.DateOnly, a.Date)
		if err != nil {
			continue
		}
		diff := int(day.Sub(today).Hours() / 24)
		if diff == 1 {
			out = append(out, fromAppointment(a, models.NotifyReminder, stamp,
				fmt.Sprintf("Reminder: %s has an appointment tomorrow at %s with %s", a.PetName, a.Time, a.DocName)))
		}
		if diff >= 1 && diff <= UpcomingHorizon {
			out = append(out, fromAppointment(a, models.NotifyInfo, stamp,
				fmt.Sprintf("Upcoming: %s appointment on %s at %s", a.PetName, a.Date, a.Time)))
		}
	}
	return out
}

// Admin builds staff notifications for the appointments scheduled on the
// day of now: one per appointment plus an alert for each pending one.
func Admin(appts []models.Appointment, now time.Time) []models.Notification {
	stamp := dayOf(now).Format(time.DateOnly)

	var out []models.Notification
	for _, a := range appts {
		if a.Date != stamp {
			continue
		}
		out = append(out, fromAppointment(a, models.NotifyAppointment, stamp,
			fmt.Sprintf("%s has an appointment today at %s for %s with %s", a.Name, a.Time, a.PetName, a.DocName)))
		if a.Status == models.StatusPending {
			out = append(out, fromAppointment(a, models.NotifyAlert, stamp,
				fmt.Sprintf("Pending appointment: %s's appointment for %s needs confirmation", a.Name, a.PetName)))
		}
	}
	return out
}

func fromAppointment(a models.Appointment, typ models.NotificationType, date, msg string) models.Notification {
	id := a.ID
	unread := false
	return models.Notification{
		Message:       msg,
		Type:          typ,
		Date:          date,
		UserEmail:     a.Email,
		AppointmentID: &id,
		IsRead:        &unread,
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
