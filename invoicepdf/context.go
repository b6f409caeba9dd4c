package invoicepdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/invoicer/models"
)

var ErrInvalidIssueDate = errors.New("invoice issue date is not an ISO date")

// ContractLookup is the read side of the contract store.
type ContractLookup interface {
	// GetContractByID returns nil, nil when no contract has that id.
	GetContractByID(ctx context.Context, id string) (*models.Contract, error)
	GetContractsByClientID(ctx context.Context, clientID string) ([]models.Contract, error)
}

const (
	termsEndOfMonth = "Payment is due by the end of the invoice month."
	termsDaysFormat = "Payment is due within %d days from the invoice date."
)

// RenderContext is everything the renderer needs, resolved once per render.
// It is built by BuildContext and must not be modified afterwards.
type RenderContext struct {
	Page  Canvas
	Fonts Fonts

	Invoice  models.Invoice
	Client   models.Client
	Settings models.Settings

	// Contract is nil when the invoice has no linked contract and its client
	// has none either.
	Contract       *models.Contract
	Currency       string
	IssueDate      time.Time
	Items          []models.InvoiceItem
	HasCustomItems bool
	PaymentTerms   string
	InvoiceNumText string
}

// BuildContext resolves the contract, currency, items, payment terms and the
// display invoice number for one render. The invoice number, the description
// month and the filename all derive from the issue date, so an issue date that
// is not YYYY-MM-DD fails with ErrInvalidIssueDate instead of rendering.
func BuildContext(ctx context.Context, lookup ContractLookup, page Canvas, fonts Fonts, inv *models.Invoice, client *models.Client, settings *models.Settings) (RenderContext, error) {
	issued, err := models.ParseISODate(inv.IssueDate)
	if err != nil {
		return RenderContext{}, fmt.Errorf("%w: %q", ErrInvalidIssueDate, inv.IssueDate)
	}

	contract, err := resolveContract(ctx, lookup, inv)
	if err != nil {
		return RenderContext{}, err
	}

	hasCustomItems := inv.Type() == models.InvoiceTypeCustom
	var items []models.InvoiceItem
	if hasCustomItems {
		items = append(items, inv.Items...)
	}

	return RenderContext{
		Page:           page,
		Fonts:          fonts,
		Invoice:        *inv,
		Client:         *client,
		Settings:       *settings,
		Contract:       contract,
		Currency:       resolveCurrency(inv, contract),
		IssueDate:      issued,
		Items:          items,
		HasCustomItems: hasCustomItems,
		PaymentTerms:   paymentTerms(contract),
		InvoiceNumText: invoiceNumText(inv.InvoiceNumber, issued),
	}, nil
}

// resolveContract prefers the invoice's own contract. Invoices stored before
// contractId existed fall back to the first contract of the client, in
// whatever order the store returns them.
func resolveContract(ctx context.Context, lookup ContractLookup, inv *models.Invoice) (*models.Contract, error) {
	if lookup == nil {
		return nil, nil
	}
	if inv.ContractID != nil {
		c, err := lookup.GetContractByID(ctx, *inv.ContractID)
		if err != nil {
			return nil, fmt.Errorf("failed to load contract %s: %w", *inv.ContractID, err)
		}
		return c, nil
	}
	contracts, err := lookup.GetContractsByClientID(ctx, inv.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts of client %s: %w", inv.ClientID, err)
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	c := contracts[0]
	return &c, nil
}

func resolveCurrency(inv *models.Invoice, contract *models.Contract) string {
	if inv.Currency != "" {
		return inv.Currency
	}
	if contract != nil && contract.Currency != "" {
		return contract.Currency
	}
	return models.DefaultCurrency
}

func paymentTerms(contract *models.Contract) string {
	if contract == nil {
		return fmt.Sprintf(termsDaysFormat, models.DefaultDueDays)
	}
	if contract.EffectiveDueDateMethod() == models.DueDateEndOfNextMonth {
		return termsEndOfMonth
	}
	return fmt.Sprintf(termsDaysFormat, contract.EffectiveDueDays())
}

// invoiceNumText builds the short "INVOICE [MM-YYYY-XXXX]" label. Month and
// year come from the issue date, not from the stored number; XXXX is the tail
// of the number's last dash-separated segment.
func invoiceNumText(number string, issued time.Time) string {
	parts := strings.Split(number, "-")
	last := []rune(parts[len(parts)-1])
	if len(last) > 4 {
		last = last[len(last)-4:]
	}
	return fmt.Sprintf("INVOICE [%02d-%d-%s]", int(issued.Month()), issued.Year(), string(last))
}
