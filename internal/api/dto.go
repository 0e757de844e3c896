package api

import (
	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/models"
)

// StatusRequest is the body of PUT /appointments/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// NotificationListResponse is the live notification set.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}

// AddNotificationResponse reports whether a pushed notification went live.
type AddNotificationResponse struct {
	Added bool `json:"added"`
	NotificationListResponse
}

// DismissResponse is returned after a dismissal. Persisted is false when the
// dismissal could not be saved and may reappear after a restart.
type DismissResponse struct {
	Persisted bool `json:"persisted"`
	NotificationListResponse
}

// PruneResponse reports how many dismissals were forgotten.
type PruneResponse struct {
	Removed int `json:"removed"`
}

func notificationList(svc *clinic.Service) NotificationListResponse {
	live := svc.Notifications()
	return NotificationListResponse{Notifications: live, Count: len(live)}
}
