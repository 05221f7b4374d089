package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invoicebook/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository owns the invoices table. Each call is a single
// autocommitted statement, or a read followed by one write; concurrent
// updates of the same row are last-writer-wins.
type InvoiceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db, now: time.Now}
}

// WithClock returns a copy of the repository that reads the current time
// from now. Overdue reports and updated_at depend on it.
func (r *InvoiceRepository) WithClock(now func() time.Time) *InvoiceRepository {
	cp := *r
	cp.now = now
	return &cp
}

func (r *InvoiceRepository) today() models.Date {
	return models.DateOf(r.now())
}

func (r *InvoiceRepository) ListAll(ctx context.Context) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	if err := r.db.WithContext(ctx).Order("issue_date desc, id desc").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).Where("invoice_number = ?", number).First(&inv).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, f models.InvoiceFields) (*models.Invoice, error) {
	number := trimmed(f.InvoiceNumber)
	customer := trimmed(f.CustomerName)
	if number == "" || customer == "" || f.IssueDate == nil || f.TotalAmount == nil {
		return nil, invalid("missing required field")
	}

	issue, err := parseDate(*f.IssueDate)
	if err != nil {
		return nil, err
	}
	due := issue.AddDays(models.DefaultPaymentTermDays)
	if f.DueDate != nil {
		if due, err = parseDate(*f.DueDate); err != nil {
			return nil, err
		}
	}

	inv := models.Invoice{
		InvoiceNumber:      number,
		IssueDate:          issue,
		DueDate:            due,
		CustomerName:       customer,
		CustomerIC:         f.CustomerIC,
		CustomerDIC:        f.CustomerDIC,
		CustomerAddress:    f.CustomerAddress,
		TotalAmount:        f.TotalAmount.Round(models.AmountScale),
		PaymentStatus:      models.StatusUnpaid,
		ServiceDescription: f.ServiceDescription,
	}
	if f.PaymentStatus != nil {
		inv.PaymentStatus = *f.PaymentStatus
	}
	if f.PaymentDate != nil {
		paid, err := parseDate(*f.PaymentDate)
		if err != nil {
			return nil, err
		}
		inv.PaymentDate = &paid
	}
	if err := checkInvoice(&inv); err != nil {
		return nil, err
	}

	if _, err := r.GetByNumber(ctx, number); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return r.GetByID(ctx, inv.ID)
}

// Update applies the supplied fields to invoice id. When the call sets an
// issue date without a due date, the due date moves with it. Optional
// fields sent as null are cleared; required ones are rejected.
func (r *InvoiceRepository) Update(ctx context.Context, id uint, f models.InvoiceFields) (*models.Invoice, error) {
	inv, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return nil, invalid("nothing to update")
	}

	updates := map[string]any{}

	for key := range f.Nulls {
		switch key {
		case "customer_ic":
			inv.CustomerIC = nil
		case "customer_dic":
			inv.CustomerDIC = nil
		case "customer_address":
			inv.CustomerAddress = nil
		case "service_description":
			inv.ServiceDescription = nil
		case "payment_date":
			inv.PaymentDate = nil
		default:
			return nil, invalid("missing required field")
		}
		updates[key] = nil
	}

	if f.InvoiceNumber != nil {
		number := trimmed(f.InvoiceNumber)
		if number == "" {
			return nil, invalid("missing required field")
		}
		inv.InvoiceNumber = number
		updates["invoice_number"] = number
	}
	if f.IssueDate != nil {
		issue, err := parseDate(*f.IssueDate)
		if err != nil {
			return nil, err
		}
		inv.IssueDate = issue
		updates["issue_date"] = issue
		if f.DueDate == nil {
			inv.DueDate = issue.AddDays(models.DefaultPaymentTermDays)
			updates["due_date"] = inv.DueDate
		}
	}
	if f.DueDate != nil {
		due, err := parseDate(*f.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = due
		updates["due_date"] = due
	}
	if f.CustomerName != nil {
		customer := trimmed(f.CustomerName)
		if customer == "" {
			return nil, invalid("missing required field")
		}
		inv.CustomerName = customer
		updates["customer_name"] = customer
	}
	if f.CustomerIC != nil {
		inv.CustomerIC = f.CustomerIC
		updates["customer_ic"] = *f.CustomerIC
	}
	if f.CustomerDIC != nil {
		inv.CustomerDIC = f.CustomerDIC
		updates["customer_dic"] = *f.CustomerDIC
	}
	if f.CustomerAddress != nil {
		inv.CustomerAddress = f.CustomerAddress
		updates["customer_address"] = *f.CustomerAddress
	}
	if f.TotalAmount != nil {
		inv.TotalAmount = f.TotalAmount.Round(models.AmountScale)
		updates["total_amount"] = inv.TotalAmount
	}
	if f.PaymentStatus != nil {
		inv.PaymentStatus = *f.PaymentStatus
		updates["payment_status"] = *f.PaymentStatus
		if inv.PaymentStatus == models.StatusUnpaid && f.PaymentDate == nil {
			inv.PaymentDate = nil
			updates["payment_date"] = nil
		}
	}
	if f.PaymentDate != nil {
		paid, err := parseDate(*f.PaymentDate)
		if err != nil {
			return nil, err
		}
		inv.PaymentDate = &paid
		updates["payment_date"] = paid
	}
	if f.ServiceDescription != nil {
		inv.ServiceDescription = f.ServiceDescription
		updates["service_description"] = *f.ServiceDescription
	}

	if err := checkInvoice(inv); err != nil {
		return nil, err
	}

	if f.InvoiceNumber != nil {
		other, err := r.GetByNumber(ctx, inv.InvoiceNumber)
		switch {
		case err == nil && other.ID != id:
			return nil, ErrConflict
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	updates["updated_at"] = r.now()
	res := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update invoice %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete reports whether a row was removed.
func (r *InvoiceRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete invoice %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func checkInvoice(inv *models.Invoice) error {
	switch {
	case inv.TotalAmount.IsNegative():
		return invalid("total amount must not be negative")
	case !inv.PaymentStatus.Valid():
		return invalid(fmt.Sprintf("unknown payment status %q", inv.PaymentStatus))
	case inv.DueDate.Before(inv.IssueDate):
		return invalid("due date is before issue date")
	case inv.PaymentStatus == models.StatusPaid && inv.PaymentDate == nil:
		return invalid("paid invoice needs a payment date")
	case inv.PaymentStatus == models.StatusUnpaid && inv.PaymentDate != nil:
		return invalid("unpaid invoice cannot have a payment date")
	case inv.PaymentDate != nil && inv.PaymentDate.Before(inv.IssueDate):
		return invalid("payment date is before issue date")
	}
	return nil
}

func parseDate(s string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return models.Date{}, invalid("bad date format, use YYYY-MM-DD")
	}
	return d, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
