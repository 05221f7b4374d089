package handlers

import (
	"context"

	"invoicebook/internal/auth"
	"invoicebook/internal/models"

	"go.uber.org/zap"
)

// InvoiceService is the invoice repository as seen by the HTTP layer.
type InvoiceService interface {
	ListAll(ctx context.Context) ([]models.Invoice, error)
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	Create(ctx context.Context, f models.InvoiceFields) (*models.Invoice, error)
	Update(ctx context.Context, id uint, f models.InvoiceFields) (*models.Invoice, error)
	Delete(ctx context.Context, id uint) (bool, error)

	Unpaid(ctx context.Context) ([]models.Invoice, error)
	LargestDebtors(ctx context.Context) ([]models.Debtor, error)
	AveragePaymentDays(ctx context.Context) (float64, error)
	Overdue(ctx context.Context) ([]models.OverdueInvoice, error)
}

type Handler struct {
	gate     *auth.Gate
	invoices InvoiceService
	log      *zap.Logger
}

func New(gate *auth.Gate, invoices InvoiceService, log *zap.Logger) *Handler {
	return &Handler{gate: gate, invoices: invoices, log: log}
}
