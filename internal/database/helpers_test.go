package database

import (
	"context"
	"testing"
	"time"

	"invoicebook/internal/models"
	"invoicebook/internal/password"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(Options{
		Driver:      "sqlite",
		DSN:         ":memory:",
		MaxAttempts: 1,
		Logger:      gormlogger.Discard,
	}, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testHasher() password.Hasher {
	return password.Hasher{Cost: 4}
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func strPtr(s string) *string { return &s }

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func statusPtr(s models.PaymentStatus) *models.PaymentStatus { return &s }

func newInvoice(number, customer, issue string, amount int64) models.InvoiceFields {
	return models.InvoiceFields{
		InvoiceNumber: strPtr(number),
		CustomerName:  strPtr(customer),
		IssueDate:     strPtr(issue),
		TotalAmount:   amountPtr(amount),
	}
}

func mustCreate(t *testing.T, repo *InvoiceRepository, f models.InvoiceFields) *models.Invoice {
	t.Helper()
	inv, err := repo.Create(context.Background(), f)
	require.NoError(t, err)
	return inv
}
