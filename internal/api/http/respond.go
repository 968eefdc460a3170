package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/logger"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps a domain error onto an HTTP status and a stable error code
// the mobile clients switch on.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	status := http.StatusInternalServerError
	body := errorBody{Code: "INTERNAL", Message: "internal server error"}

	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.CodeValidation:
			status = http.StatusBadRequest
		case domain.CodeNotFound:
			status = http.StatusNotFound
		case domain.CodeConflict:
			status = http.StatusConflict
		case domain.CodeForbidden:
			status = http.StatusForbidden
		case domain.CodePaymentRequired:
			status = http.StatusPaymentRequired
		case domain.CodeCouponInvalid, domain.CodeCouponNotApplicable:
			status = http.StatusUnprocessableEntity
		}
		body = errorBody{Code: string(domainErr.Code), Message: domainErr.Message, Fields: domainErr.Fields}
	} else {
		logger.Error("Unhandled error", "error", err)
	}

	writeJSON(w, status, body)
}
