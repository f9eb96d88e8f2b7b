package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONCURRENT_MODIFICATION"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	ErrCodeDuplicate   = "DUPLICATE_REQUEST"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Authentication / authorization
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
	ErrCodeTokenInvalid:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"AGENCY_INACTIVE":     http.StatusForbidden,

	// Resources
	ErrCodeNotFound:       http.StatusNotFound,
	"AGENCY_NOT_FOUND":    http.StatusNotFound,
	"USER_NOT_FOUND":      http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	"USERNAME_TAKEN":      http.StatusConflict,
	ErrCodeConflict:       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Validation -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_CODE":          http.StatusBadRequest,
	"INVALID_AMOUNT":        http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_DISCOUNT":      http.StatusBadRequest,
	"INVALID_LIMIT":         http.StatusBadRequest,
	"INVALID_VALUE":         http.StatusBadRequest,
	"INVALID_KIND":          http.StatusBadRequest,
	"INVALID_SCOPE":         http.StatusBadRequest,
	"INVALID_WINDOW":        http.StatusBadRequest,
	"INVALID_CUSTOMER":      http.StatusBadRequest,
	"INVALID_CUSTOMER_NAME": http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,
	"INVALID_ACTOR":         http.StatusBadRequest,
	"INVALID_AGENT":         http.StatusBadRequest,
	"INVALID_INVOICE":       http.StatusBadRequest,
	"INVALID_REASON":        http.StatusBadRequest,
	"INVALID_DIRECTION":     http.StatusBadRequest,
	"INVALID_USERNAME":      http.StatusBadRequest,
	"INVALID_PASSWORD":      http.StatusBadRequest,
	"INVALID_ROLE":          http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":  http.StatusBadRequest,
	"INVALID_INVOICE_NUMBER": http.StatusBadRequest,
	"INVALID_RETURN_NUMBER":  http.StatusBadRequest,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"NO_ITEMS":                http.StatusUnprocessableEntity,
	"SIGNATURE_REQUIRED":      http.StatusUnprocessableEntity,
	"RECEIVER_REQUIRED":       http.StatusUnprocessableEntity,
	"APPROVAL_REQUIRED":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
	"INVOICE_EXCEEDS_TOTAL":   http.StatusUnprocessableEntity,
	"RETURN_EXCEEDS_INVOICED": http.StatusUnprocessableEntity,
	"CUSTOMER_MISMATCH":       http.StatusUnprocessableEntity,
	"ALREADY_LINKED":          http.StatusUnprocessableEntity,
	"USAGE_CAP_REACHED":       http.StatusUnprocessableEntity,

	// Rate limiting / idempotency
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeDuplicate:   http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
