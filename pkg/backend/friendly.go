package backend

import (
	"context"
	"errors"
)

// FriendlyMessage maps backend failures to short user facing messages.
// It matches the errreport.MessageMapper signature.
func FriendlyMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "Database is not configured", true
	case errors.Is(err, ErrTableNotFound):
		return "The requested table does not exist", true
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out", true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	if errors.Is(err, ErrRequestFailed) {
		return "Could not reach the database", true
	}
	return "", false
}
