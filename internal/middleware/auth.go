package middleware

import (
	"invoicebook/internal/auth"
	"invoicebook/internal/httperr"
	"invoicebook/internal/logger"
	"invoicebook/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAuth resolves the session user through the gate and makes it
// available to handlers via CurrentUser.
func RequireAuth(gate *auth.Gate, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := gate.Authorize(c.Request.Context(), sessions.Default(c))
		if err != nil {
			httperr.Abort(c, logger.FromGin(c, log), err)
			return
		}
		setCurrentUser(c, user)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(log *zap.Logger, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			httperr.Abort(c, logger.FromGin(c, log), auth.ErrUnauthenticated)
			return
		}
		if err := auth.CheckRole(user, roles...); err != nil {
			httperr.Abort(c, logger.FromGin(c, log), err)
			return
		}
		c.Next()
	}
}
