// Package handlers defines the error codes returned in ErrorResponse and the
// mapping from service errors to HTTP statuses.
//
// Clients branch on the code, never on the message.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "payment_required",
//	  "message": "payment not completed"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/services"
)

const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeRateLimited        = "too_many_requests"
	ErrCodeInternal           = "internal_error"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
	ErrCodePaymentRequired    = "payment_required"
	ErrCodeBadGateway         = "bad_gateway"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// errMapping pairs a service error with its HTTP rendering. Order matters:
// the first errors.Is match wins.
var errMapping = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrInvalidID, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrInvalidEmail, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrInvalidRole, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrInvalidStatus, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrInvalidAmount, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrMissingSession, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrRequestNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrDuplicateUser, http.StatusConflict, ErrCodeConflict},
	{services.ErrPaymentNotPaid, http.StatusPaymentRequired, ErrCodePaymentRequired},
	{services.ErrGateway, http.StatusBadGateway, ErrCodeBadGateway},
	{services.ErrPaymentsDisabled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
}

// failErr renders a service error. Unknown errors become a 500 whose message
// does not leak internals; the cause is attached to the context for logging.
func failErr(c *gin.Context, err error) {
	for _, m := range errMapping {
		if errors.Is(err, m.err) {
			msg := m.err.Error()
			if m.status >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
			fail(c, m.status, m.code, msg)
			return
		}
	}
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
}
