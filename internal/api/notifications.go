package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spf13/cast"

	"github.com/starford/vetdesk/internal/models"
)

// ListNotifications handles GET /api/notifications.
//
//	@Summary		Live notification set
//	@Tags			notifications
//	@Produce		json
//	@Success		200	{object}	NotificationListResponse
//	@Security		BearerAuth
//	@Router			/notifications [get]
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, notificationList(h.svc))
}

// RefreshNotifications handles POST /api/notifications/refresh. The owner's
// feed replaces the live set, minus dismissed ones.
func (h *Handler) RefreshNotifications(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.RefreshNotifications(r.Context(), h.owner); err != nil {
		writeServiceError(w, "refresh notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, notificationList(h.svc))
}

// AddNotification handles POST /api/notifications.
//
//	@Summary		Push a notification onto the live set
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Notification	true	"Notification"
//	@Success		201		{object}	AddNotificationResponse
//	@Success		200		{object}	AddNotificationResponse	"Duplicate or dismissed"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notifications [post]
func (h *Handler) AddNotification(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if n.UserEmail == "" {
		n.UserEmail = h.owner
	}
	added, err := h.svc.AddNotification(n)
	if err != nil {
		writeServiceError(w, "add notification", err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, AddNotificationResponse{Added: added, NotificationListResponse: notificationList(h.svc)})
}

// DismissNotification handles DELETE /api/notifications/{index}.
//
//	@Summary		Dismiss the live notification at index
//	@Tags			notifications
//	@Param			index	path		int	true	"Position in the live set"
//	@Success		200		{object}	DismissResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notifications/{index} [delete]
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	index, ok := intParam(r, "index")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid index"))
		return
	}
	dismissed, err := h.svc.DismissNotification(index)
	if !dismissed {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	if err != nil {
		slog.Warn("dismissal not persisted", slog.Int("index", index), slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, DismissResponse{Persisted: err == nil, NotificationListResponse: notificationList(h.svc)})
}

// ClearNotifications handles DELETE /api/notifications.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearNotifications()
	w.WriteHeader(http.StatusNoContent)
}

// ClearDismissed handles DELETE /api/notifications/dismissed.
func (h *Handler) ClearDismissed(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearDismissed(); err != nil {
		writeServiceError(w, "clear dismissed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PruneDismissed handles POST /api/notifications/dismissed/prune?olderThan=720h.
func (h *Handler) PruneDismissed(w http.ResponseWriter, r *http.Request) {
	retention, err := cast.ToDurationE(r.URL.Query().Get("olderThan"))
	if err != nil || retention <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("olderThan must be a positive duration"))
		return
	}
	removed, err := h.svc.PruneDismissals(retention)
	if err != nil {
		writeServiceError(w, "prune dismissed", err)
		return
	}
	writeJSON(w, http.StatusOK, PruneResponse{Removed: removed})
}
