// Package httperr maps service errors onto HTTP statuses and the
// {"error": "..."} envelope.
package httperr

import (
	"errors"
	"net/http"

	"invoicebook/internal/auth"
	"invoicebook/internal/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Error string `json:"error"`
}

// Status returns the HTTP status and client-facing message for err.
// Unknown errors map to 500 with a generic message.
func Status(err error) (int, string) {
	var verr *database.ValidationError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "Insufficient permissions"
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "Invoice not found"
	case errors.Is(err, database.ErrConflict):
		return http.StatusBadRequest, "Invoice number already exists"
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}

// Abort writes the error response and stops the handler chain. Server
// errors are logged with their cause, client errors only at debug level.
func Abort(c *gin.Context, log *zap.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.String("reason", msg))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Response{Error: msg})
}
