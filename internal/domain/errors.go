package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable reason returned to API callers.
type ErrorCode string

const (
	CodeValidation          ErrorCode = "VALIDATION"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodePaymentRequired     ErrorCode = "PAYMENT_REQUIRED"
	CodeCouponInvalid       ErrorCode = "COUPON_INVALID"
	CodeCouponNotApplicable ErrorCode = "COUPON_NOT_APPLICABLE"
)

// Error carries a reason code and human-readable message across the service
// boundary. Dependency failures (notifications, rewards, reversals) are never
// wrapped in it; those are logged and swallowed.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Fields  []string  `json:"fields,omitempty"` // offending fields for VALIDATION
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (fields: %v)", e.Code, e.Message, e.Fields)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(message string, fields ...string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func NewNotFoundError(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NewPaymentRequiredError(message string) *Error {
	return &Error{Code: CodePaymentRequired, Message: message}
}

func NewCouponInvalidError() *Error {
	return &Error{Code: CodeCouponInvalid, Message: "coupon code is not recognized"}
}

func NewCouponNotApplicableError(reason string) *Error {
	return &Error{Code: CodeCouponNotApplicable, Message: reason}
}

// CodeOf extracts the reason code from an error chain, or "" if the error is
// not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
