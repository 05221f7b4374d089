package handlers

import (
	"errors"
	"net/http"

	"invoicebook/internal/auth"
	"invoicebook/internal/metrics"
	"invoicebook/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindError(err))
		return
	}

	user, err := h.gate.Login(c.Request.Context(), sessions.Default(c), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			h.reqLog(c).Debug("login rejected")
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		h.fail(c, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.reqLog(c).Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Summary(),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.gate.Logout(sessions.Default(c)); err != nil {
		h.reqLog(c).Warn("failed to clear session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, auth.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}
