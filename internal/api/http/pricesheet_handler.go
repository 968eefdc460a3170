package http

import (
	"encoding/json"
	"net/http"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/service"
)

type PriceSheetHandler struct {
	sheetSvc service.PriceSheetService
}

func NewPriceSheetHandler(sheetSvc service.PriceSheetService) *PriceSheetHandler {
	return &PriceSheetHandler{sheetSvc: sheetSvc}
}

// Get handles GET /v1/addon-prices.
func (h *PriceSheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.sheetSvc.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// Update handles PATCH /v1/addon-prices. Admin only; fields left out of the
// body keep their current value.
func (h *PriceSheetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.PriceSheetUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	sheet, err := h.sheetSvc.Update(r.Context(), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}
