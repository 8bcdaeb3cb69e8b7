// Package errors carries HTTP-mapped errors across layer boundaries, so
// a service can say "this is a 502" without importing gin.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError pairs a user-visible message with the HTTP status it should
// produce. Err holds the underlying cause for logs; it is never sent to
// the client.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AsAppError unwraps err to an *AppError, if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// Upstream marks a failure in a dependency this service calls on the
// user's behalf (the code executor, the AI provider, Cloudinary).
func Upstream(service string, err error) *AppError {
	return &AppError{
		Status:  http.StatusBadGateway,
		Message: service + " is unavailable right now",
		Err:     err,
	}
}
