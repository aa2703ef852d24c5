package domain

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every failure that leaves a component is one of these
// (possibly wrapped in a DomainError); the HTTP layer maps them to statuses.

var (
	// ErrMissingParameters is returned when pagination parameters are incomplete.
	ErrMissingParameters = errors.New("missing parameters")

	// ErrParseInt is returned when a numeric parameter cannot be parsed.
	ErrParseInt = errors.New("cannot parse parameter")

	// ErrDatabaseQuery is returned for any storage fault. The underlying driver
	// error is logged by the repository and never exposed.
	ErrDatabaseQuery = errors.New("database query error")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrModerationTransport covers network failures talking to the moderation
	// API and undecodable success bodies.
	ErrModerationTransport = errors.New("moderation transport error")

	// ErrModerationClient is returned when the moderation API answers with a 4xx.
	ErrModerationClient = errors.New("moderation client error")

	// ErrModerationServer is returned when the moderation API answers with a 5xx.
	ErrModerationServer = errors.New("moderation server error")
)

// Framework-boundary kinds raised by the HTTP layer itself.
var (
	ErrMalformedBody    = errors.New("cannot deserialize request body")
	ErrCORSForbidden    = errors.New("CORS request forbidden")
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// DomainError wraps a base error kind with additional context.
type DomainError struct {
	// Base is the error kind (e.g., ErrParseInt)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which parameter caused the error
	Field string

	// Status is the upstream HTTP status for moderation errors
	Status int

	// Cause is the underlying error, kept for logging only
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Base.Error()
	switch {
	case e.Field != "" && e.Message != "":
		msg = fmt.Sprintf("%s %s: %s", msg, e.Field, e.Message)
	case e.Field != "":
		msg = fmt.Sprintf("%s %s", msg, e.Field)
	case e.Message != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Base}
	}
	return []error{e.Base, e.Cause}
}

// NewMissingParametersError reports incomplete pagination parameters.
func NewMissingParametersError() *DomainError {
	return &DomainError{Base: ErrMissingParameters}
}

// NewParseIntError reports a parameter that is not a valid integer.
func NewParseIntError(field string, cause error) *DomainError {
	return &DomainError{
		Base:  ErrParseInt,
		Field: field,
		Cause: cause,
	}
}

// NewDatabaseQueryError hides a storage fault behind the opaque kind.
func NewDatabaseQueryError(cause error) *DomainError {
	return &DomainError{
		Base:  ErrDatabaseQuery,
		Cause: cause,
	}
}

// NewNotFoundError creates a not found error for the named resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewModerationTransportError reports a failed or undecodable moderation call.
func NewModerationTransportError(message string, cause error) *DomainError {
	return &DomainError{
		Base:    ErrModerationTransport,
		Message: message,
		Cause:   cause,
	}
}

// NewModerationStatusError classifies a non-2xx moderation response.
func NewModerationStatusError(status int, message string) *DomainError {
	base := ErrModerationServer
	if status >= 400 && status < 500 {
		base = ErrModerationClient
	}
	return &DomainError{
		Base:    base,
		Message: message,
		Status:  status,
	}
}

// NewMalformedBodyError reports a request body that does not fit its schema.
func NewMalformedBodyError(field string, cause error) *DomainError {
	return &DomainError{
		Base:  ErrMalformedBody,
		Field: field,
		Cause: cause,
	}
}

// NewCORSForbiddenError reports a rejected cross-origin request.
func NewCORSForbiddenError(reason string) *DomainError {
	return &DomainError{
		Base:    ErrCORSForbidden,
		Message: reason,
	}
}

// IsInvalidParameter checks if an error is a pagination or parse failure.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrMissingParameters) || errors.Is(err, ErrParseInt)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDatabaseQuery checks if an error is an opaque storage fault.
func IsDatabaseQuery(err error) bool {
	return errors.Is(err, ErrDatabaseQuery)
}

// IsModeration checks if an error came from the moderation client.
func IsModeration(err error) bool {
	return errors.Is(err, ErrModerationTransport) ||
		errors.Is(err, ErrModerationClient) ||
		errors.Is(err, ErrModerationServer)
}
