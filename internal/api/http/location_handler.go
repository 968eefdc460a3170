package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/service"
)

type LocationHandler struct {
	locationSvc service.LocationService
	validate    *validator.Validate
}

func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{
		locationSvc: locationSvc,
		validate:    validator.New(),
	}
}

type recordLocationRequest struct {
	SubjectID   int64    `json:"subject_id" validate:"required,gt=0"`
	SubjectKind string   `json:"subject_kind" validate:"required,oneof=RENTER GUARANTOR"`
	Latitude    float64  `json:"latitude" validate:"latitude"`
	Longitude   float64  `json:"longitude" validate:"longitude"`
	AccuracyM   *float64 `json:"accuracy_m,omitempty" validate:"omitempty,gte=0"`
	SpeedKPH    *float64 `json:"speed_kph,omitempty" validate:"omitempty,gte=0"`
	Heading     *float64 `json:"heading,omitempty" validate:"omitempty,gte=0,lt=360"`
}

// Record handles POST /v1/locations.
func (h *LocationHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError(err.Error()))
		return
	}

	sample, err := h.locationSvc.Record(r.Context(), &domain.LocationSample{
		SubjectID:   req.SubjectID,
		SubjectKind: domain.SubjectKind(req.SubjectKind),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AccuracyM:   req.AccuracyM,
		SpeedKPH:    req.SpeedKPH,
		Heading:     req.Heading,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

// Latest handles GET /v1/locations/latest?kind=RENTER.
func (h *LocationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	kind := domain.SubjectKind(r.URL.Query().Get("kind"))
	samples, err := h.locationSvc.Latest(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

// LatestForSubject handles GET /v1/locations/{id}/latest?kind=RENTER. Subjects
// may read their own position; anyone else's requires an administrator.
func (h *LocationHandler) LatestForSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor := actorFrom(r.Context())
	if !actor.Admin && actor.UserID != subjectID {
		writeError(w, domain.NewForbiddenError("cannot read another subject's position"))
		return
	}
	kind := domain.SubjectKind(r.URL.Query().Get("kind"))
	sample, err := h.locationSvc.LatestForSubject(r.Context(), subjectID, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}
