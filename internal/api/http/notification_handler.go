package http

import (
	"net/http"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
	pointsSvc       service.PointsService
}

func NewNotificationHandler(notificationSvc service.NotificationService, pointsSvc service.PointsService) *NotificationHandler {
	return &NotificationHandler{
		notificationSvc: notificationSvc,
		pointsSvc:       pointsSvc,
	}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	notes, total, err := h.notificationSvc.List(r.Context(), actor.UserID, queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, Total: total})
}

// MarkAsRead handles POST /v1/notifications/{id}/read.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor := actorFrom(r.Context())
	if err := h.notificationSvc.MarkAsRead(r.Context(), actor.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PointsBalance handles GET /v1/points/balance.
func (h *NotificationHandler) PointsBalance(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	balance, err := h.pointsSvc.Balance(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}
