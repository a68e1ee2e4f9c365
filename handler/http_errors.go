package handler

import "net/http"

// HTTPError carries a status code and a short message key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

// Message returns the text shown to users for e. Unknown keys fall back to
// the status text.
func (e HTTPError) Message() string {
	if msg, ok := messages[e.Key]; ok {
		return msg
	}
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return genericErrorMessage
}

const genericErrorMessage = "An error occurred processing your request"

var messages = map[string]string{
	"bad_request":           "The request could not be understood",
	"not_found":             "The requested resource was not found",
	"too_many_requests":     "Too many requests, try again in a moment",
	"internal_server_error": genericErrorMessage,
	"service_unavailable":   "The service is temporarily unavailable",
}

// Predefined errors for common statuses.
var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates an HTTPError with a custom code and key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
