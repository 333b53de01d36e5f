package dto

import (
	"net/http"
	"strings"
)

// Standardized error codes. Domain codes that are not listed here are passed
// through unchanged and mapped to a status by GetHTTPStatus.

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON        = "ERR_INVALID_JSON"
	ErrCodeRestaurantRequired = "ERR_RESTAURANT_REQUIRED"
	ErrCodePayloadTooLarge    = "ERR_PAYLOAD_TOO_LARGE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,
	ErrCodeRestaurantRequired: http.StatusBadRequest,
	ErrCodePayloadTooLarge:    http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Ordering rules
	"NO_ITEMS":               http.StatusUnprocessableEntity,
	"TABLE_INACTIVE":         http.StatusUnprocessableEntity,
	"RESTAURANT_INACTIVE":    http.StatusUnprocessableEntity,
	"MENU_ITEM_UNAVAILABLE":  http.StatusUnprocessableEntity,
	"MENU_ITEM_NOT_FOUND":    http.StatusBadRequest,
	"MENU_ITEM_IN_USE":       http.StatusConflict,
	"TABLE_HAS_ACTIVE_ORDER": http.StatusConflict,
	"ORDER_NUMBER_TAKEN":     http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted domain codes fall back on their naming convention:
// INVALID_* is 400 and *_NOT_FOUND is 404. Anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps the generic domain error codes to standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a generic domain code to the standardized format.
// Specific codes such as MENU_ITEM_IN_USE are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
