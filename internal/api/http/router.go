// Package http exposes the booking engine over a JSON API. Authentication is
// verification only; tokens are issued by the external auth collaborator.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"motorent-backend/internal/security"
	"motorent-backend/internal/service"
)

// Handlers bundles the route handlers for router construction.
type Handlers struct {
	Booking      *BookingHandler
	Location     *LocationHandler
	PriceSheet   *PriceSheetHandler
	Notification *NotificationHandler
}

// NewRouter builds the API router with auth and request logging applied to
// every /v1 route.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(authMiddleware(tokens))

	// Bookings
	api.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/confirm", h.Booking.Transition(service.EventConfirm)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/start-trip", h.Booking.Transition(service.EventStartTrip)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/end-trip", h.Booking.Transition(service.EventEndTrip)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", h.Booking.Transition(service.EventCancel)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/complete", h.Booking.Transition(service.EventComplete)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/payment", h.Booking.PaymentCallback).Methods(http.MethodPost)

	// Tracking
	api.HandleFunc("/locations", h.Location.Record).Methods(http.MethodPost)
	api.HandleFunc("/locations/latest", requireAdmin(h.Location.Latest)).Methods(http.MethodGet)
	api.HandleFunc("/locations/{id}/latest", h.Location.LatestForSubject).Methods(http.MethodGet)

	// Add-on prices
	api.HandleFunc("/addon-prices", h.PriceSheet.Get).Methods(http.MethodGet)
	api.HandleFunc("/addon-prices", requireAdmin(h.PriceSheet.Update)).Methods(http.MethodPatch)

	// Notifications and points
	api.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)
	api.HandleFunc("/points/balance", h.Notification.PointsBalance).Methods(http.MethodGet)

	return r
}
