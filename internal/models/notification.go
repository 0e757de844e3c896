package models

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifyReminder    NotificationType = "reminder"
	NotifyAlert       NotificationType = "alert"
	NotifyInfo        NotificationType = "info"
	NotifyAppointment NotificationType = "appointment"
)

// NotificationTypes lists every valid notification type.
var NotificationTypes = []any{NotifyReminder, NotifyAlert, NotifyInfo, NotifyAppointment}

// Notification is a message shown to a user. Identity is derived from
// Message, Date and Type only.
type Notification struct {
	Message       string           `json:"message" yaml:"message"`
	Type          NotificationType `json:"type" yaml:"type"`
	Date          string           `json:"date" yaml:"date"`
	UserEmail     string           `json:"userEmail,omitempty" yaml:"user_email"`
	AppointmentID *int             `json:"appointmentId,omitempty" yaml:"appointment_id"`
	IsRead        *bool            `json:"isRead,omitempty" yaml:"is_read"`
}
