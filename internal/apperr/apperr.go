// Package apperr defines the application error taxonomy. Every expected
// failure in the service layer is one of these; anything else is treated
// as an internal error by the centralized responder.
package apperr

import "net/http"

// Kind classifies an application error.
type Kind int

const (
	// KindNotFound maps to 404.
	KindNotFound Kind = iota
	// KindUnauthorized maps to 401 (bad credentials).
	KindUnauthorized
	// KindAuthentication maps to 401 (missing or unusable token).
	KindAuthentication
	// KindForbidden maps to 403.
	KindForbidden
	// KindConflict maps to 409 (uniqueness violation).
	KindConflict
)

// Error carries a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func NotFound(msg string) *Error {
	if msg == "" {
		msg = "Resource not found."
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "Unauthorized."
	}
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Authentication(msg string) *Error {
	if msg == "" {
		msg = "Authentication failed."
	}
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "Access denied."
	}
	return &Error{Kind: KindForbidden, Message: msg}
}

func Conflict(msg string) *Error {
	if msg == "" {
		msg = "Conflict."
	}
	return &Error{Kind: KindConflict, Message: msg}
}
