// Package apperr defines the application error kinds handlers translate into
// HTTP responses. Internal errors keep their cause for server-side logging but
// expose only a generic message to clients.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: fiber.StatusConflict, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: fiber.StatusForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: fiber.StatusUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: message}
}

// Internal wraps an unexpected failure. The cause stays server-side; clients
// only ever see the generic message.
func Internal(err error) *Error {
	return &Error{Code: fiber.StatusInternalServerError, Message: "Something went wrong", Err: err}
}

// Status returns the HTTP status for err, defaulting to 500 for errors that
// are not application errors.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return fiber.StatusInternalServerError
}

// ClientMessage returns the message safe to serialize to a client.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
