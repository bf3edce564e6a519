package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// ErrMalformedID marks an identifier that cannot address any record
// (for Mongo, a string that is not a valid ObjectID hex).
var ErrMalformedID = errors.New("malformed identifier")

// Error is a failure with an explicit HTTP status. Handlers attach these
// to the gin context and the terminal translator writes them out.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// DuplicateError is a uniqueness-constraint violation from the store,
// carrying the offending field ("email", "phone", ...).
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate entry"
	}
	return e.Field + " already exists"
}

// ValidationError collects per-field validation messages from request
// binding; the translator joins them with ", ".
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
