package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the backend. Message is the response body,
// which the backend uses as its human-readable reason.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

func newError(status int, body string) *Error {
	if body == "" {
		body = fmt.Sprintf("Request failed: %d", status)
	}
	return &Error{StatusCode: status, Message: body}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.StatusCode == http.StatusUnauthorized
}
