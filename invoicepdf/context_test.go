package invoicepdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/invoicer/models"
)

func buildContext(t *testing.T, lookup ContractLookup, inv models.Invoice) RenderContext {
	t.Helper()
	rec, fonts := newRecorder(t)
	client, settings := testClient(), testSettings()
	rc, err := BuildContext(context.Background(), lookup, rec, fonts, &inv, &client, &settings)
	require.NoError(t, err)
	return rc
}

func TestBuildContext_CurrencyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		invoice  string
		contract string
		want     string
	}{
		{"invoice wins", "USD", "EUR", "USD"},
		{"contract when invoice empty", "", "EUR", "EUR"},
		{"default when both empty", "", "", "JPY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContract()
			c.Currency = tt.contract
			lookup := &fakeContracts{byID: map[string]*models.Contract{c.ID: &c}}

			inv := contractInvoice()
			inv.Currency = tt.invoice
			assert.Equal(t, tt.want, buildContext(t, lookup, inv).Currency)
		})
	}
}

func TestBuildContext_InvoiceType(t *testing.T) {
	items := []models.InvoiceItem{{Description: "Audit", Quantity: 1, UnitPrice: 500}}

	tests := []struct {
		name       string
		typ        models.InvoiceType
		items      []models.InvoiceItem
		wantCustom bool
	}{
		{"items imply custom", "", items, true},
		{"no items imply recurring", "", nil, false},
		{"explicit recurring ignores items", models.InvoiceTypeRecurring, items, false},
		{"explicit custom without items", models.InvoiceTypeCustom, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := contractInvoice()
			inv.InvoiceType = tt.typ
			inv.Items = tt.items

			rc := buildContext(t, contractLookup(), inv)
			assert.Equal(t, tt.wantCustom, rc.HasCustomItems)
			if tt.wantCustom {
				assert.Equal(t, len(tt.items), len(rc.Items))
			} else {
				assert.Empty(t, rc.Items)
			}
		})
	}
}

func TestBuildContext_PaymentTerms(t *testing.T) {
	endOfMonth := testContract()
	endOfMonth.DueDateMethod = models.DueDateEndOfNextMonth
	days := testContract()
	unset := testContract()
	unset.DueDays = 0
	unset.DueDateMethod = ""

	tests := []struct {
		name     string
		contract *models.Contract
		want     string
	}{
		{"end of next month", &endOfMonth, "Payment is due by the end of the invoice month."},
		{"45 days", &days, "Payment is due within 45 days from the invoice date."},
		{"unset fields", &unset, "Payment is due within 30 days from the invoice date."},
		{"no contract", nil, "Payment is due within 30 days from the invoice date."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeContracts{byID: map[string]*models.Contract{}}
			if tt.contract != nil {
				lookup.byID["contract-1"] = tt.contract
			}
			assert.Equal(t, tt.want, buildContext(t, lookup, contractInvoice()).PaymentTerms)
		})
	}
}

func TestBuildContext_LegacyInvoiceUsesFirstClientContract(t *testing.T) {
	first := testContract()
	first.ID = "first"
	first.Currency = "USD"
	second := testContract()
	second.ID = "second"
	lookup := &fakeContracts{byClient: map[string][]models.Contract{"client-1": {first, second}}}

	inv := contractInvoice()
	inv.ContractID = nil
	rc := buildContext(t, lookup, inv)

	require.NotNil(t, rc.Contract)
	assert.Equal(t, "first", rc.Contract.ID)
	assert.Equal(t, "USD", rc.Currency)
}

func TestBuildContext_DanglingContractID(t *testing.T) {
	rc := buildContext(t, &fakeContracts{}, contractInvoice())
	assert.Nil(t, rc.Contract)
	assert.Equal(t, "JPY", rc.Currency)
}

func TestBuildContext_Errors(t *testing.T) {
	rec, fonts := newRecorder(t)
	client, settings := testClient(), testSettings()

	inv := contractInvoice()
	inv.IssueDate = "31/03/2025"
	_, err := BuildContext(context.Background(), contractLookup(), rec, fonts, &inv, &client, &settings)
	assert.ErrorIs(t, err, ErrInvalidIssueDate)

	boom := errors.New("store unavailable")
	inv = contractInvoice()
	_, err = BuildContext(context.Background(), &fakeContracts{err: boom}, rec, fonts, &inv, &client, &settings)
	assert.ErrorIs(t, err, boom)
}

func TestBuildContext_IssueDateKeepsCalendarDay(t *testing.T) {
	inv := contractInvoice()
	inv.IssueDate = "2025-03-01T00:30:00+09:00"

	rc := buildContext(t, contractLookup(), inv)
	assert.Equal(t, time.March, rc.IssueDate.Month())
	assert.Equal(t, 1, rc.IssueDate.Day())
}

func TestInvoiceNumText(t *testing.T) {
	issued := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INVOICE [04-2025-4567]", invoiceNumText("INV-2025-03-1741234567", issued))
	assert.Equal(t, "INVOICE [04-2025-12]", invoiceNumText("INV-12", issued))
	assert.Equal(t, "INVOICE [04-2025-]", invoiceNumText("", issued))
}
