package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vetdesk/internal/clinic"
)

// RouterConfig carries the knobs NewRouter needs besides the service.
//
// DefaultEmail is the identity of requests without a user header and the
// owner of the live notification set. Events, if non-nil, is mounted at
// GET /events next to the notification routes.
type RouterConfig struct {
	AuthEnabled  bool
	Token        string
	DefaultEmail string
	MaxUpload    int64
	Events       http.Handler
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *clinic.Service, cfg RouterConfig) chi.Router {
	h := NewHandler(svc, cfg.DefaultEmail)
	dh := NewDocumentHandler(svc, cfg.MaxUpload)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(cfg.AuthEnabled, cfg.Token))
	r.Use(IdentityMiddleware(cfg.DefaultEmail))

	r.Get("/pets", h.ListPets)
	r.Get("/pets/{id}/documents", h.ListDocuments)
	r.Post("/pets/{id}/documents", dh.Upload)
	r.Get("/pets/{id}/documents/{filename}", dh.ServeFile)

	r.Get("/appointments", h.ListAppointments)
	r.Get("/appointments/today", h.TodayAppointments)
	r.Put("/appointments/{id}/status", h.UpdateAppointmentStatus)

	r.Get("/clients", h.ListClients)
	r.Get("/doctors", h.Doctors)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/profile", h.Profile)

	// Notifications.
	r.Group(func(r chi.Router) {
		r.Use(OwnerOnly(cfg.DefaultEmail))

		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications", h.AddNotification)
		r.Post("/notifications/refresh", h.RefreshNotifications)
		r.Delete("/notifications", h.ClearNotifications)
		r.Delete("/notifications/dismissed", h.ClearDismissed)
		r.Post("/notifications/dismissed/prune", h.PruneDismissed)
		r.Delete("/notifications/{index}", h.DismissNotification)

		if cfg.Events != nil {
			r.Get("/events", cfg.Events.ServeHTTP)
		}
	})

	return r
}
