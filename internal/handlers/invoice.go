package handlers

import (
	"net/http"

	"invoicebook/internal/database"
	"invoicebook/internal/metrics"
	"invoicebook/internal/middleware"
	"invoicebook/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var f models.InvoiceFields
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, bindError(err))
		return
	}

	inv, err := h.invoices.Create(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.InvoicesCreatedTotal.Inc()
	h.reqLog(c).Info("invoice created", h.actor(c), zap.Uint("invoice_id", inv.ID), zap.String("invoice_number", inv.InvoiceNumber))
	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var f models.InvoiceFields
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, bindError(err))
		return
	}

	inv, err := h.invoices.Update(c.Request.Context(), id, f)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.reqLog(c).Info("invoice updated", h.actor(c), zap.Uint("invoice_id", inv.ID))
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	removed, err := h.invoices.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !removed {
		h.fail(c, database.ErrNotFound)
		return
	}

	metrics.InvoicesDeletedTotal.Inc()
	h.reqLog(c).Info("invoice deleted", h.actor(c), zap.Uint("invoice_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

func (h *Handler) actor(c *gin.Context) zap.Field {
	if user, ok := middleware.CurrentUser(c); ok {
		return zap.Uint("user_id", user.ID)
	}
	return zap.Skip()
}
