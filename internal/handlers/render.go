package handlers

import (
	"net/http"
	"strconv"

	"invoicebook/internal/httperr"
	"invoicebook/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) reqLog(c *gin.Context) *zap.Logger {
	return logger.FromGin(c, h.log)
}

func (h *Handler) fail(c *gin.Context, err error) {
	httperr.Abort(c, h.reqLog(c), err)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, httperr.Response{Error: msg})
}

func invoiceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid invoice id")
		return 0, false
	}
	return uint(id), true
}
