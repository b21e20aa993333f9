// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints.
//
// Conventions:
//   - Every failure is an ErrorResponse with a stable `code` from errors.go.
//     Service errors go through failErr, which owns the status mapping.
//   - `fail()` aborts the chain, so no later handler can write a second body.
//   - 5xx responses are logged once, here, with the request-scoped logger and
//     the last error attached to the context.
//   - Successes are plain JSON documents: store acknowledgments
//     ({acknowledged, insertedId}), records, or list envelopes
//     ({result, total...}).
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "donation request not found"
//	}
//
// Example success response:
//
//	HTTP/1.1 201 Created
//	{ "acknowledged": true, "insertedId": "3f2c1a9e-5b7d-4c8e-9f10-1234567890ab" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: the X-Request-ID of the request, for matching client reports
//     against server logs. Omitted when no id was assigned.
//   - Code: stable machine-readable code; clients branch on it.
//   - Message: human-readable text, safe to display. Never carries internal
//     causes for 5xx responses.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"donation request not found"`
}

// fail aborts the request with a structured error.
//
// It reads the request id from the response headers (set by RequestID), writes
// the envelope with AbortWithStatusJSON and, for status >= 500, logs status,
// code, message and the last gin error through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		if err := c.Errors.Last(); err != nil {
			ev = ev.Err(err.Err)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// The router uses it for NoRoute and NoMethod so fallbacks share the envelope
// without reaching into unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
