package database

import (
	"context"
	"fmt"

	"invoicebook/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SeedOptions struct {
	OwnerPassword      string
	AccountantPassword string
}

// SeedSampleData fills an empty store with the two standard accounts and
// a few sample invoices. It does nothing once any user exists.
func SeedSampleData(ctx context.Context, users *UserRepository, invoices *InvoiceRepository, opts SeedOptions, log *zap.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seedUsers := []struct {
		Username string
		Password string
		Role     models.UserRole
	}{
		{"owner", opts.OwnerPassword, models.RoleOwner},
		{"accountant", opts.AccountantPassword, models.RoleAccountant},
	}
	for _, u := range seedUsers {
		if _, err := users.Create(ctx, u.Username, u.Password, u.Role); err != nil {
			return fmt.Errorf("create seed user %s: %w", u.Username, err)
		}
		log.Info("created seed user", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	}

	samples := sampleInvoices()
	for _, f := range samples {
		if _, err := invoices.Create(ctx, f); err != nil {
			return fmt.Errorf("create sample invoice %s: %w", *f.InvoiceNumber, err)
		}
	}
	log.Info("created sample invoices", zap.Int("count", len(samples)))
	return nil
}

func sampleInvoices() []models.InvoiceFields {
	type row struct {
		number, issue, due, customer, ic, dic, address string
		amount                                         int64
		status                                         models.PaymentStatus
		paid, description                              string
	}
	rows := []row{
		{"F2025001", "2025-10-01", "2025-10-15", "ABC Company s.r.o.", "12345678", "CZ12345678",
			"Main Street 123, Prague", 15000, models.StatusPaid, "2025-10-10", "IT consulting services"},
		{"F2025002", "2025-10-05", "2025-10-19", "XYZ Solutions a.s.", "87654321", "CZ87654321",
			"Business Park 456, Brno", 22000, models.StatusUnpaid, "", "Software development"},
		{"F2025003", "2025-10-10", "2025-10-24", "Tech Innovations s.r.o.", "11223344", "CZ11223344",
			"Innovation Street 789, Ostrava", 18000, models.StatusPaid, "2025-10-20", "Technical support"},
	}

	out := make([]models.InvoiceFields, 0, len(rows))
	for _, r := range rows {
		amount := decimal.NewFromInt(r.amount)
		f := models.InvoiceFields{
			InvoiceNumber:      &r.number,
			IssueDate:          &r.issue,
			DueDate:            &r.due,
			CustomerName:       &r.customer,
			CustomerIC:         &r.ic,
			CustomerDIC:        &r.dic,
			CustomerAddress:    &r.address,
			TotalAmount:        &amount,
			PaymentStatus:      &r.status,
			ServiceDescription: &r.description,
		}
		if r.paid != "" {
			f.PaymentDate = &r.paid
		}
		out = append(out, f)
	}
	return out
}
