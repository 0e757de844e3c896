package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vetdesk/internal/clinic"
)

// Handler holds API route handlers.
type Handler struct {
	svc   *clinic.Service
	owner string
}

// NewHandler creates a new Handler. owner is the user whose feed backs the
// live notification set.
func NewHandler(svc *clinic.Service, owner string) *Handler {
	return &Handler{svc: svc, owner: owner}
}

// pageRequest reads page, limit and select. Bad values fall back to defaults.
func pageRequest(q url.Values) clinic.PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("limit"))
	sel, _ := strconv.Atoi(q.Get("select"))
	return clinic.PageRequest{Page: page, Size: size, Select: sel}
}

func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return v, true
}

// ListPets handles GET /api/pets.
//
//	@Summary		List pets with filters and pagination
//	@Tags			pets
//	@Produce		json
//	@Param			search	query		string	false	"Matches name, type, breed or owner"
//	@Param			type	query		string	false	"Exact pet type"
//	@Param			page	query		int		false	"Page number"
//	@Param			limit	query		int		false	"Page size"
//	@Param			select	query		int		false	"Pet id returned as selected"
//	@Success		200		{object}	view.Snapshot[models.Pet]
//	@Security		BearerAuth
//	@Router			/pets [get]
func (h *Handler) ListPets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := h.svc.ListPets(r.Context(), clinic.PetFilters.Parse(q), pageRequest(q))
	if err != nil {
		writeServiceError(w, "list pets", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ListAppointments handles GET /api/appointments.
//
//	@Summary		List appointments with filters and pagination
//	@Tags			appointments
//	@Produce		json
//	@Param			searchTerm	query		string	false	"Matches owner, pet, email or doctor"
//	@Param			dateFrom	query		string	false	"Earliest date (YYYY-MM-DD)"
//	@Param			dateTo		query		string	false	"Latest date (YYYY-MM-DD)"
//	@Param			status		query		string	false	"Status"	Enums(pending, confirmed, completed, cancelled)
//	@Success		200			{object}	view.Snapshot[models.Appointment]
//	@Security		BearerAuth
//	@Router			/appointments [get]
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := h.svc.ListAppointments(r.Context(), clinic.AppointmentFilters.Parse(q), pageRequest(q))
	if err != nil {
		writeServiceError(w, "list appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// TodayAppointments handles GET /api/appointments/today.
func (h *Handler) TodayAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.TodayAppointments(r.Context())
	if err != nil {
		writeServiceError(w, "today appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": appts, "count": len(appts)})
}

// UpdateAppointmentStatus handles PUT /api/appointments/{id}/status.
//
//	@Summary		Change an appointment's status
//	@Tags			appointments
//	@Accept			json
//	@Param			id		path	int				true	"Appointment id"
//	@Param			body	body	StatusRequest	true	"New status"
//	@Success		204
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/appointments/{id}/status [put]
func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid appointment id"))
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateAppointmentStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, "update appointment status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListClients handles GET /api/clients.
//
//	@Summary		List clients with filters and pagination
//	@Tags			clients
//	@Produce		json
//	@Param			searchTerm	query		string	false	"Matches name, email or phone"
//	@Param			status		query		bool	false	"Active flag"
//	@Param			minVisits	query		int		false	"Minimum visit count"
//	@Success		200			{object}	view.Snapshot[models.Client]
//	@Security		BearerAuth
//	@Router			/clients [get]
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := h.svc.ListClients(r.Context(), clinic.ClientFilters.Parse(q), pageRequest(q))
	if err != nil {
		writeServiceError(w, "list clients", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Doctors handles GET /api/doctors.
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.Doctors(r.Context())
	if err != nil {
		writeServiceError(w, "list doctors", err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

// Dashboard handles GET /api/dashboard.
//
//	@Summary		Admin overview: stats, today's appointments, alerts
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	clinic.Dashboard
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Profile handles GET /api/profile for the caller identified by X-User-Email.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), UserEmail(r.Context()))
	if err != nil {
		writeServiceError(w, "profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
