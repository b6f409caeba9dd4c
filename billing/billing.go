// Package billing produces the recurring invoices of a year from the stored
// contracts.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/models"
)

var (
	ErrNoContracts = errors.New("no contracts found, create a contract first")
	ErrInvalidYear = errors.New("year must be between 1 and 9999")
)

// Store is the persistence billing needs.
type Store interface {
	ListContracts(ctx context.Context) ([]models.Contract, error)
	// FindRecurringInvoice returns nil, nil when no invoice matches.
	FindRecurringInvoice(ctx context.Context, clientID, issueDate, contractID string) (*models.Invoice, error)
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
}

// Summary reports what GenerateForYear did.
type Summary struct {
	Year    int              `json:"year"`
	Created []models.Invoice `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
}

type Service struct {
	store  Store
	node   *snowflake.Node
	logger *zap.Logger
}

func NewService(store Store, node *snowflake.Node, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, node: node, logger: logger.Named("billing")}
}

// GenerateForYear makes sure every contract has one invoice per month of year.
// The invoice for month m is issued on the last day of month m-1, so the
// January invoice of 2026 is dated 2025-12-31. Existing invoices are updated
// when the contract's total or due date changed and skipped otherwise.
func (s *Service) GenerateForYear(ctx context.Context, year int) (*Summary, error) {
	if year < 1 || year > 9999 {
		return nil, ErrInvalidYear
	}

	contracts, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, ErrNoContracts
	}

	summary := &Summary{Year: year, Created: []models.Invoice{}}
	for i := range contracts {
		c := &contracts[i]
		for month := time.January; month <= time.December; month++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := s.ensureInvoice(ctx, summary, c, year, month); err != nil {
				return nil, fmt.Errorf("contract %s, %d-%02d: %w", c.ID, year, int(month), err)
			}
		}
	}

	s.logger.Info("recurring invoices generated",
		zap.Int("year", year),
		zap.Int("contracts", len(contracts)),
		zap.Int("created", len(summary.Created)),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *Service) ensureInvoice(ctx context.Context, summary *Summary, c *models.Contract, year int, month time.Month) error {
	issued, due := Period(year, month, c)
	issueDate, dueDate := models.FormatISODate(issued), models.FormatISODate(due)
	total := ContractTotal(c)

	existing, err := s.store.FindRecurringInvoice(ctx, c.ClientID, issueDate, c.ID)
	if err != nil {
		return err
	}
	// Untyped invoices with items are custom too; they are left alone and the
	// contract gets its own invoice.
	if existing != nil && existing.Type() == models.InvoiceTypeCustom {
		existing = nil
	}

	if existing != nil {
		if decimal.NewFromFloat(existing.Total).Equal(total) && existing.DueDate == dueDate {
			summary.Skipped++
			return nil
		}
		existing.Total = total.InexactFloat64()
		existing.DueDate = dueDate
		if existing.ContractID == nil {
			existing.ContractID = &c.ID
		}
		if err := s.store.UpdateInvoice(ctx, existing); err != nil {
			return err
		}
		summary.Updated++
		return nil
	}

	contractID := c.ID
	invoice := models.Invoice{
		InvoiceNumber: NewInvoiceNumber(s.node, issued),
		ClientID:      c.ClientID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Total:         total.InexactFloat64(),
		Currency:      c.Currency,
		InvoiceType:   models.InvoiceTypeRecurring,
		ContractID:    &contractID,
	}
	if err := s.store.CreateInvoice(ctx, &invoice); err != nil {
		return err
	}
	summary.Created = append(summary.Created, invoice)
	return nil
}

// Period returns the issue and due dates of the invoice c produces for month
// of year.
func Period(year int, month time.Month, c *models.Contract) (issued, due time.Time) {
	// Day 0 is the last day of the previous month.
	issued = time.Date(year, month, 0, 0, 0, 0, 0, time.UTC)
	if c.EffectiveDueDateMethod() == models.DueDateEndOfNextMonth {
		return issued, time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return issued, issued.AddDate(0, 0, c.EffectiveDueDays())
}

// ContractTotal is unit price times quantity, computed in decimal.
func ContractTotal(c *models.Contract) decimal.Decimal {
	return decimal.NewFromFloat(c.UnitPrice).Mul(decimal.NewFromFloat(c.Quantity))
}

// NewInvoiceNumber returns "INV-YYYY-MM-{id}" for an invoice issued on issued.
// The snowflake id keeps numbers unique across months and restarts.
func NewInvoiceNumber(node *snowflake.Node, issued time.Time) string {
	return fmt.Sprintf("INV-%d-%02d-%s", issued.Year(), int(issued.Month()), node.Generate().String())
}
