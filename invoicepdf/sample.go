package invoicepdf

import (
	"context"
	"time"

	"github.com/yourusername/invoicer/models"
)

// Sample data used to preview styles without touching the store.

func SampleClient() models.Client {
	return models.Client{
		ID:          "sample-client-id",
		CompanyName: "Acme Corporation",
		Address:     "123 Business Ave\nSuite 100\nTokyo, Japan",
		Email:       "billing@acme.example.com",
	}
}

func SampleInvoice() models.Invoice {
	return models.Invoice{
		ID:            "sample-invoice-id",
		InvoiceNumber: "INV-2025-01-1706700000",
		ClientID:      "sample-client-id",
		IssueDate:     "2025-01-15",
		DueDate:       "2025-02-15",
		Total:         150000,
		CreatedAt:     time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		Currency:      "JPY",
		Items: []models.InvoiceItem{
			{Description: "Consulting Services - January 2025", Quantity: 1, UnitPrice: 100000},
			{Description: "Additional Support", Quantity: 10, UnitPrice: 5000},
		},
	}
}

func SampleSettings() models.Settings {
	return models.Settings{
		FreelancerName:   "Jane Smith",
		Address:          "456 Freelancer St\nOsaka, Japan",
		Email:            "jane@freelancer.example.com",
		BankName:         "Sample Bank",
		AccountHolder:    "Jane Smith",
		AccountNumber:    "****1234",
		Swift:            "SAMPLEXX",
		BankCountry:      "Japan",
		BankCurrency:     "JPY",
		FilenameTemplate: models.DefaultFilenameTemplate,
	}
}

// Preview renders the sample invoice in the given style. The sample has its
// own items, so no contract is looked up.
func (g *Generator) Preview(ctx context.Context, style string) (*Result, error) {
	inv, client, settings := SampleInvoice(), SampleClient(), SampleSettings()
	preview := &Generator{logger: g.logger, batchLimit: g.batchLimit}
	return preview.Generate(ctx, &inv, &client, &settings, string(ResolveStyleID(style)))
}
