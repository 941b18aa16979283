package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call.
type Kind string

var (
	KindTransport       Kind = "transport"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindServer          Kind = "server"
	KindMalformed       Kind = "malformed"
)

// Error is the uniform failure returned by the client and the services built on it.
type Error struct {
	Kind      Kind
	Operation string
	Status    int
	// Message is the server-provided explanation, if any.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (%d): %s", e.Operation, e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (%d)", e.Operation, e.Kind, e.Status)
	default:
		return fmt.Sprintf("%s: %s", e.Operation, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Category labels the error for metrics.
func (e *Error) Category() string {
	return string(e.Kind)
}

// KindOf extracts the Kind of an API error.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err is an API error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// IsUnauthenticated reports whether the session must be re-established.
func IsUnauthenticated(err error) bool {
	return IsKind(err, KindUnauthenticated)
}

// Message returns the server-provided message carried by err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Malformed reports a response whose shape did not match what operation expects.
func Malformed(operation string, err error) *Error {
	return &Error{Kind: KindMalformed, Operation: operation, Err: err}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}
