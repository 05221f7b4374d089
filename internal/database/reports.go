package database

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"invoicebook/internal/models"

	"github.com/shopspring/decimal"
)

func (r *InvoiceRepository) Unpaid(ctx context.Context) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", models.StatusUnpaid).
		Order("due_date asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("unpaid invoices: %w", err)
	}
	return invoices, nil
}

type unpaidAmount struct {
	CustomerName string
	TotalAmount  decimal.Decimal
}

// LargestDebtors sums unpaid amounts per customer, biggest debt first and
// customer name breaking ties. Sums are taken in decimal; SQLite would add
// the stored amounts as floats.
func (r *InvoiceRepository) LargestDebtors(ctx context.Context) ([]models.Debtor, error) {
	var rows []unpaidAmount
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("customer_name, total_amount").
		Where("payment_status = ?", models.StatusUnpaid).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("largest debtors: %w", err)
	}

	index := make(map[string]int)
	debtors := []models.Debtor{}
	for _, row := range rows {
		i, ok := index[row.CustomerName]
		if !ok {
			i = len(debtors)
			index[row.CustomerName] = i
			debtors = append(debtors, models.Debtor{CustomerName: row.CustomerName, TotalDebt: decimal.Zero})
		}
		debtors[i].TotalDebt = debtors[i].TotalDebt.Add(row.TotalAmount)
	}

	slices.SortFunc(debtors, func(a, b models.Debtor) int {
		if c := b.TotalDebt.Cmp(a.TotalDebt); c != 0 {
			return c
		}
		return strings.Compare(a.CustomerName, b.CustomerName)
	})
	return debtors, nil
}

type paymentSpan struct {
	IssueDate   models.Date
	PaymentDate models.Date
}

// AveragePaymentDays is the mean number of days between issue and payment
// over paid invoices, or 0 when nothing has been paid.
func (r *InvoiceRepository) AveragePaymentDays(ctx context.Context) (float64, error) {
	var spans []paymentSpan
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("issue_date, payment_date").
		Where("payment_status = ? AND payment_date IS NOT NULL", models.StatusPaid).
		Scan(&spans).Error
	if err != nil {
		return 0, fmt.Errorf("average payment time: %w", err)
	}
	if len(spans) == 0 {
		return 0, nil
	}

	total := 0
	for _, s := range spans {
		total += s.PaymentDate.DaysSince(s.IssueDate)
	}
	return float64(total) / float64(len(spans)), nil
}

func (r *InvoiceRepository) Overdue(ctx context.Context) ([]models.OverdueInvoice, error) {
	today := r.today()

	invoices := []models.Invoice{}
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND due_date < ?", models.StatusUnpaid, today).
		Order("due_date asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("overdue invoices: %w", err)
	}

	overdue := make([]models.OverdueInvoice, 0, len(invoices))
	for _, inv := range invoices {
		overdue = append(overdue, models.OverdueInvoice{
			Invoice:     inv,
			DaysOverdue: today.DaysSince(inv.DueDate),
		})
	}
	return overdue, nil
}
