// Package response is the terminal stage of every request: it writes success
// bodies and converts any failure into a consistent HTTP error response.
// FromDomainError is the only place an HTTP status is chosen for an error.
package response

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"qaboard/src/core/domain"
)

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "INVALID_PARAMETER")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the parameter or body field that caused the error
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// Error codes.
const (
	CodeMissingParameters = "MISSING_PARAMETERS"
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeDatabaseQuery     = "DATABASE_QUERY_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidBody       = "INVALID_BODY"
	CodeCORSForbidden     = "CORS_FORBIDDEN"
	CodeRouteNotFound     = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"
)

const internalServerError = "Internal Server Error"

// OK sends a 200 response with data as the whole body.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Text sends a 200 plain-text confirmation.
func Text(c *gin.Context, format string, args ...any) {
	c.String(http.StatusOK, format, args...)
}

// rejection is the HTTP rendering of one error.
type rejection struct {
	status  int
	code    string
	message string
	field   string
	level   slog.Level
	// quiet rejections are caller mistakes that need no log line.
	quiet bool
}

// classify maps an error to its HTTP rendering. Server-side detail never
// reaches message for database and moderation kinds.
func classify(err error) rejection {
	var de *domain.DomainError
	errors.As(err, &de)
	field := ""
	if de != nil {
		field = de.Field
	}

	switch {
	case errors.Is(err, domain.ErrMissingParameters):
		return rejection{status: http.StatusUnprocessableEntity, code: CodeMissingParameters,
			message: "Missing parameters", quiet: true}
	case errors.Is(err, domain.ErrParseInt):
		return rejection{status: http.StatusUnprocessableEntity, code: CodeInvalidParameter,
			message: err.Error(), field: field, quiet: true}
	case errors.Is(err, domain.ErrNotFound):
		resource := "resource"
		if de != nil && de.Message != "" {
			resource = de.Message
		}
		return rejection{status: http.StatusNotFound, code: CodeNotFound,
			message: resource + " not found", level: slog.LevelError}
	case errors.Is(err, domain.ErrDatabaseQuery):
		return rejection{status: http.StatusUnprocessableEntity, code: CodeDatabaseQuery,
			message: "Database query error", level: slog.LevelError}
	case errors.Is(err, domain.ErrModerationTransport),
		errors.Is(err, domain.ErrModerationClient),
		errors.Is(err, domain.ErrModerationServer):
		return rejection{status: http.StatusInternalServerError, code: CodeInternal,
			message: internalServerError, level: slog.LevelError}
	case errors.Is(err, domain.ErrCORSForbidden):
		return rejection{status: http.StatusForbidden, code: CodeCORSForbidden,
			message: err.Error(), level: slog.LevelError}
	case errors.Is(err, domain.ErrMalformedBody):
		msg := "Cannot deserialize request body"
		if de != nil && de.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, de.Cause)
		}
		return rejection{status: http.StatusUnprocessableEntity, code: CodeInvalidBody,
			message: msg, field: field, level: slog.LevelError}
	case errors.Is(err, domain.ErrRouteNotFound):
		return rejection{status: http.StatusNotFound, code: CodeRouteNotFound,
			message: "Route not found", level: slog.LevelWarn}
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return rejection{status: http.StatusMethodNotAllowed, code: CodeMethodNotAllowed,
			message: "Method not allowed", level: slog.LevelWarn}
	case errors.Is(err, domain.ErrRateLimited):
		return rejection{status: http.StatusTooManyRequests, code: CodeRateLimited,
			message: "Rate limit exceeded", level: slog.LevelWarn}
	default:
		return rejection{status: http.StatusInternalServerError, code: CodeInternal,
			message: internalServerError, level: slog.LevelError}
	}
}

// statusOf returns the HTTP status FromDomainError would write for err.
func statusOf(err error) int {
	return classify(err).status
}

// FromDomainError converts any error into an HTTP error response and logs it
// at the severity its kind calls for. The request is aborted.
func FromDomainError(c *gin.Context, log *slog.Logger, err error, requestID string) {
	r := classify(err)

	if !r.quiet && log != nil {
		log.Log(context.Background(), r.level, "request rejected",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", r.status,
			"code", r.code,
			"error", err.Error(),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(r.status, Error{
		Error: ErrorDetail{
			Code:      r.code,
			Message:   r.message,
			Field:     r.field,
			RequestID: requestID,
		},
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Error{
		Error: ErrorDetail{
			Code:      CodeInternal,
			Message:   internalServerError,
			RequestID: requestID,
		},
	})
}
