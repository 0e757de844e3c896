package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/starford/vetdesk/internal/backend"
	"github.com/starford/vetdesk/internal/models"
)

// Remote reads clinic data from the REST backend.
type Remote struct {
	c *backend.Client
}

// NewRemote returns a Remote using c.
func NewRemote(c *backend.Client) *Remote {
	return &Remote{c: c}
}

func (r *Remote) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := r.c.Get(ctx, "/admin/appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) Pets(ctx context.Context) ([]models.Pet, error) {
	var out []models.Pet
	if err := r.c.Get(ctx, "/admin/pets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clients accepts either a bare list or an envelope with a "data" or
// "clients" list.
func (r *Remote) Clients(ctx context.Context) ([]models.Client, error) {
	var raw json.RawMessage
	if err := r.c.Get(ctx, "/admin/clients", &raw); err != nil {
		return nil, err
	}
	var list []models.Client
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var env struct {
		Data    []models.Client `json:"data"`
		Clients []models.Client `json:"clients"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("source: decode clients: %w", err)
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return env.Clients, nil
}

func (r *Remote) Doctors(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	if err := r.c.Get(ctx, "/doctors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) Documents(ctx context.Context, petID int) ([]models.Document, error) {
	var out []models.Document
	if err := r.c.Get(ctx, fmt.Sprintf("/admin/pets/%d/documents", petID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) Notifications(ctx context.Context, email string) ([]models.Notification, error) {
	path := "/appointment-notifications"
	if email != "" {
		path += "/user/" + url.PathEscape(email)
	}
	var out []models.Notification
	if err := r.c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) AdminNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.c.Get(ctx, "/admin/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) UserProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := r.c.Get(ctx, "/user/profile/"+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Remote) Stats(ctx context.Context) (*models.AdminStats, error) {
	var out models.AdminStats
	if err := r.c.Get(ctx, "/admin/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Remote) UpdateAppointmentStatus(ctx context.Context, id int, status models.AppointmentStatus) error {
	body := map[string]models.AppointmentStatus{"status": status}
	return r.c.Put(ctx, fmt.Sprintf("/admin/appointments/%d/status", id), body, nil)
}

var _ Source = (*Remote)(nil)
