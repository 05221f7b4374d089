package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UnpaidReport(c *gin.Context) {
	invoices, err := h.invoices.Unpaid(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) LargestDebtorsReport(c *gin.Context) {
	debtors, err := h.invoices.LargestDebtors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debtors": debtors})
}

func (h *Handler) AveragePaymentTimeReport(c *gin.Context) {
	avg, err := h.invoices.AveragePaymentDays(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_payment_days": avg})
}

func (h *Handler) OverdueReport(c *gin.Context) {
	invoices, err := h.invoices.Overdue(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}
