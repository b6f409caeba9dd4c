package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceType(t *testing.T) {
	items := []InvoiceItem{{Description: "Work", Quantity: 1, UnitPrice: 100}}

	tests := []struct {
		name     string
		invoice  Invoice
		expected InvoiceType
	}{
		{
			name:     "Legacy With Items",
			invoice:  Invoice{Items: items},
			expected: InvoiceTypeCustom,
		},
		{
			name:     "Legacy Empty Items",
			invoice:  Invoice{Items: []InvoiceItem{}},
			expected: InvoiceTypeRecurring,
		},
		{
			name:     "Legacy Nil Items",
			invoice:  Invoice{},
			expected: InvoiceTypeRecurring,
		},
		{
			name:     "Explicit Recurring Wins Over Items",
			invoice:  Invoice{InvoiceType: InvoiceTypeRecurring, Items: items},
			expected: InvoiceTypeRecurring,
		},
		{
			name:     "Explicit Custom",
			invoice:  Invoice{InvoiceType: InvoiceTypeCustom},
			expected: InvoiceTypeCustom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.invoice.Type())
		})
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	// Calendar fields are kept as written, whatever the offset.
	d, err = ParseISODate("2025-01-01T00:30:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", FormatISODate(d))

	_, err = ParseISODate("15/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestContractDefaults(t *testing.T) {
	c := Contract{}
	assert.Equal(t, DefaultDueDays, c.EffectiveDueDays())
	assert.Equal(t, DueDateDays, c.EffectiveDueDateMethod())

	c = Contract{DueDays: 45, DueDateMethod: DueDateEndOfNextMonth}
	assert.Equal(t, 45, c.EffectiveDueDays())
	assert.Equal(t, DueDateEndOfNextMonth, c.EffectiveDueDateMethod())
}
