package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus(t *testing.T) {
	s, err := ParsePaymentStatus("zaplaceno")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ParsePaymentStatus("paid")
	assert.Error(t, err)
	assert.True(t, StatusUnpaid.Valid())
	assert.False(t, PaymentStatus("").Valid())
}

func TestUserRole(t *testing.T) {
	r, err := ParseUserRole("accountant")
	require.NoError(t, err)
	assert.Equal(t, RoleAccountant, r)

	_, err = ParseUserRole("admin")
	assert.Error(t, err)
}

func TestInvoiceFields_Decode(t *testing.T) {
	var f InvoiceFields
	err := json.Unmarshal([]byte(`{"issue_date":"2025-10-25","total_amount":1500.50,"id":7,"created_at":"x"}`), &f)
	require.NoError(t, err)

	assert.False(t, f.Empty())
	require.NotNil(t, f.IssueDate)
	assert.Equal(t, "2025-10-25", *f.IssueDate)
	require.NotNil(t, f.TotalAmount)
	assert.True(t, f.TotalAmount.Equal(decimal.RequireFromString("1500.5")))
	assert.Nil(t, f.DueDate)

	var empty InvoiceFields
	require.NoError(t, json.Unmarshal([]byte(`{"unknown":"x"}`), &empty))
	assert.True(t, empty.Empty())
}

func TestInvoiceFields_DecodeNulls(t *testing.T) {
	var f InvoiceFields
	err := json.Unmarshal([]byte(`{"customer_ic":null,"customer_name":"ACME","unknown":null}`), &f)
	require.NoError(t, err)

	assert.Nil(t, f.CustomerIC)
	assert.Equal(t, map[string]bool{"customer_ic": true}, f.Nulls)
	require.NotNil(t, f.CustomerName)
	assert.Equal(t, "ACME", *f.CustomerName)

	var onlyNull InvoiceFields
	require.NoError(t, json.Unmarshal([]byte(`{"service_description": null}`), &onlyNull))
	assert.False(t, onlyNull.Empty())

	var unknownNull InvoiceFields
	require.NoError(t, json.Unmarshal([]byte(`{"unknown":null}`), &unknownNull))
	assert.True(t, unknownNull.Empty())

	var bad InvoiceFields
	assert.Error(t, json.Unmarshal([]byte(`{"total_amount":"abc"}`), &bad))
}

func TestOverdueInvoice_JSON(t *testing.T) {
	inv := OverdueInvoice{
		Invoice: Invoice{
			ID:            3,
			InvoiceNumber: "F2025002",
			IssueDate:     NewDate(2025, time.October, 5),
			DueDate:       NewDate(2025, time.October, 19),
			CustomerName:  "XYZ Solutions a.s.",
			TotalAmount:   decimal.NewFromInt(22000),
			PaymentStatus: StatusUnpaid,
		},
		DaysOverdue: 6,
	}

	b, err := json.Marshal(inv)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "F2025002", out["invoice_number"])
	assert.Equal(t, "2025-10-19", out["due_date"])
	assert.Equal(t, float64(22000), out["total_amount"])
	assert.Equal(t, float64(6), out["days_overdue"])
	assert.Nil(t, out["payment_date"])
	assert.NotContains(t, out, "Invoice")
}

func TestUser_SummaryHidesDigest(t *testing.T) {
	u := User{ID: 1, Username: "owner", PasswordHash: "secret", Role: RoleOwner}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")

	assert.Equal(t, UserSummary{ID: 1, Username: "owner", Role: RoleOwner}, u.Summary())
}
