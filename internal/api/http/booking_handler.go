package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	validate   *validator.Validate
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingSvc: bookingSvc,
		validate:   validator.New(),
	}
}

type tripPointRequest struct {
	Location  string   `json:"location" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	At        time.Time `json:"at" validate:"required"`
}

type createBookingRequest struct {
	VehicleID     int64            `json:"vehicle_id" validate:"required,gt=0"`
	Start         tripPointRequest `json:"start" validate:"required"`
	End           tripPointRequest `json:"end" validate:"required"`
	AddOns        domain.AddOnCounts `json:"addons"`
	CouponCode    string           `json:"coupon_code,omitempty"`
	PaymentOption string           `json:"payment_option,omitempty" validate:"omitempty,oneof=FULL ADVANCE"`
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError(err.Error()))
		return
	}

	actor := actorFrom(r.Context())
	booking, err := h.bookingSvc.Admit(r.Context(), service.AdmitRequest{
		RenterID:  actor.UserID,
		VehicleID: req.VehicleID,
		Start: domain.TripPoint{
			Location:  req.Start.Location,
			Latitude:  req.Start.Latitude,
			Longitude: req.Start.Longitude,
			At:        req.Start.At,
		},
		End: domain.TripPoint{
			Location:  req.End.Location,
			Latitude:  req.End.Latitude,
			Longitude: req.End.Longitude,
			At:        req.End.At,
		},
		AddOns:        req.AddOns,
		CouponCode:    req.CouponCode,
		PaymentOption: domain.PaymentOption(req.PaymentOption),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// Get handles GET /v1/bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.Get(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

// List handles GET /v1/bookings. Administrators may scope with ?renter_id=.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")
	renterID := queryInt64(r, "renter_id")

	bookings, total, err := h.bookingSvc.List(r.Context(), actorFrom(r.Context()), renterID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

type transitionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Transition handles POST /v1/bookings/{id}/{event} for the lifecycle verbs.
func (h *BookingHandler) Transition(event service.TransitionEvent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		var req transitionRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, domain.NewValidationError("malformed request body"))
				return
			}
		}
		booking, err := h.bookingSvc.Transition(r.Context(), actorFrom(r.Context()), id, event, req.Reason)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

type paymentCallbackRequest struct {
	PaidCents     int64  `json:"paid_cents" validate:"gte=0"`
	PaymentStatus string `json:"payment_status" validate:"required,oneof=PENDING PARTIAL PAID"`
}

// PaymentCallback handles POST /v1/bookings/{id}/payment. The payment
// collaborator reports collection progress here.
func (h *BookingHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req paymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError(err.Error()))
		return
	}
	booking, err := h.bookingSvc.RecordPayment(r.Context(), id, req.PaidCents, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid path parameter", name)
	}
	return id, nil
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return def
	}
	return int32(v)
}

func queryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
