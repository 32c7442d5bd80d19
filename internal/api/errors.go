package api

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed is returned when a 401 could not be recovered
// by the single refresh attempt. Credentials have been cleared by the
// time callers see it.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Error is a structured non-2xx backend response. Detail carries the
// backend's error message when the body had the {"detail": ...} shape,
// otherwise a generic "HTTP <status>" message.
type Error struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// Detail extracts a user-facing message from err. API errors contribute
// their backend detail; anything else falls back to the given message.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
