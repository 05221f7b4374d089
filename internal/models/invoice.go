package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts go out as JSON numbers, like the rest of the payload
	decimal.MarshalJSONWithoutQuotes = true
}

type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "zaplaceno"
	StatusUnpaid PaymentStatus = "nezaplaceno"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusUnpaid:
		return true
	}
	return false
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown payment status %q", s)
	}
	return status, nil
}

// AmountScale is the number of decimal places kept for money.
const AmountScale = 2

// DefaultPaymentTermDays is added to the issue date when no due date is given.
const DefaultPaymentTermDays = 14

type Invoice struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber      string          `gorm:"uniqueIndex;size:64;not null" json:"invoice_number"`
	IssueDate          Date            `gorm:"type:date;not null;index" json:"issue_date"`
	DueDate            Date            `gorm:"type:date;not null;index" json:"due_date"`
	CustomerName       string          `gorm:"size:255;not null;index" json:"customer_name"`
	CustomerIC         *string         `gorm:"column:customer_ic;size:32" json:"customer_ic"`   // IČ
	CustomerDIC        *string         `gorm:"column:customer_dic;size:32" json:"customer_dic"` // DIČ (VAT)
	CustomerAddress    *string         `gorm:"type:text" json:"customer_address"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"` // incl. VAT
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:nezaplaceno;index;check:chk_invoices_payment_status,payment_status IN ('zaplaceno','nezaplaceno')" json:"payment_status"`
	PaymentDate        *Date           `gorm:"type:date" json:"payment_date"`
	ServiceDescription *string         `gorm:"type:text" json:"service_description"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// InvoiceFields carries the settable invoice attributes of a create or
// update call. A nil pointer means the field was not supplied or was sent
// as null; Nulls tells the two apart. JSON keys outside this set are
// dropped by the decoder.
type InvoiceFields struct {
	InvoiceNumber      *string          `json:"invoice_number" binding:"omitempty,max=64"`
	IssueDate          *string          `json:"issue_date"`
	DueDate            *string          `json:"due_date"`
	CustomerName       *string          `json:"customer_name" binding:"omitempty,max=255"`
	CustomerIC         *string          `json:"customer_ic" binding:"omitempty,max=32"`
	CustomerDIC        *string          `json:"customer_dic" binding:"omitempty,max=32"`
	CustomerAddress    *string          `json:"customer_address"`
	TotalAmount        *decimal.Decimal `json:"total_amount"`
	PaymentStatus      *PaymentStatus   `json:"payment_status" binding:"omitempty,oneof=zaplaceno nezaplaceno"`
	PaymentDate        *string          `json:"payment_date"`
	ServiceDescription *string          `json:"service_description"`

	// Nulls holds the settable keys that were sent as JSON null.
	Nulls map[string]bool `json:"-"`
}

var invoiceFieldKeys = map[string]bool{
	"invoice_number":      true,
	"issue_date":          true,
	"due_date":            true,
	"customer_name":       true,
	"customer_ic":         true,
	"customer_dic":        true,
	"customer_address":    true,
	"total_amount":        true,
	"payment_status":      true,
	"payment_date":        true,
	"service_description": true,
}

func (f *InvoiceFields) UnmarshalJSON(data []byte) error {
	type plain InvoiceFields
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = InvoiceFields(p)
	f.Nulls = nil
	for key, v := range raw {
		if invoiceFieldKeys[key] && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if f.Nulls == nil {
				f.Nulls = make(map[string]bool)
			}
			f.Nulls[key] = true
		}
	}
	return nil
}

// Empty reports whether no settable field was supplied.
func (f InvoiceFields) Empty() bool {
	return len(f.Nulls) == 0 &&
		f.InvoiceNumber == nil &&
		f.IssueDate == nil &&
		f.DueDate == nil &&
		f.CustomerName == nil &&
		f.CustomerIC == nil &&
		f.CustomerDIC == nil &&
		f.CustomerAddress == nil &&
		f.TotalAmount == nil &&
		f.PaymentStatus == nil &&
		f.PaymentDate == nil &&
		f.ServiceDescription == nil
}

type Debtor struct {
	CustomerName string          `json:"customer_name"`
	TotalDebt    decimal.Decimal `json:"total_debt"`
}

type OverdueInvoice struct {
	Invoice
	DaysOverdue int `json:"days_overdue"`
}
