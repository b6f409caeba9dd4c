package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yourusername/invoicer/models"
)

// InvoiceFilter narrows ListInvoices. Zero values match everything.
type InvoiceFilter struct {
	ClientID string
	Year     int
}

// ListInvoices returns invoices ordered by issue date, newest first.
func (s *Store) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error) {
	tx := s.db.WithContext(ctx)
	if filter.ClientID != "" {
		tx = tx.Where("client_id = ?", filter.ClientID)
	}
	if filter.Year > 0 {
		tx = tx.Where("issue_date LIKE ?", strconv.Itoa(filter.Year)+"-%")
	}

	var invoices []models.Invoice
	if err := tx.Order("issue_date DESC").Order("invoice_number").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// ListInvoicesByYear returns the invoices issued in year, oldest first.
func (s *Store) ListInvoicesByYear(ctx context.Context, year int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Where("issue_date LIKE ?", strconv.Itoa(year)+"-%").
		Order("issue_date").
		Order("invoice_number").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices of %d: %w", year, err)
	}
	return invoices, nil
}

func (s *Store) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	ok, err := first(s.db.WithContext(ctx), &invoice, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &invoice, nil
}

// FindRecurringInvoice returns the invoice a contract produced for a client on
// issueDate. Invoices stored without a contract id match any contract of the
// client; an exact contract match is preferred. Invoices typed custom never
// match.
func (s *Store) FindRecurringInvoice(ctx context.Context, clientID, issueDate, contractID string) (*models.Invoice, error) {
	var invoice models.Invoice
	tx := s.db.WithContext(ctx).
		Where("client_id = ? AND issue_date = ?", clientID, issueDate).
		Where("(contract_id = ? OR contract_id IS NULL)", contractID).
		Where("(invoice_type IS NULL OR invoice_type <> ?)", models.InvoiceTypeCustom).
		Order("contract_id IS NULL")
	ok, err := first(tx, &invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invoice of %s on %s: %w", clientID, issueDate, err)
	}
	if !ok {
		return nil, nil
	}
	return &invoice, nil
}

// CreateInvoice inserts invoice, assigning an id when it has none.
func (s *Store) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = newID()
	}
	if err := s.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if err := s.db.WithContext(ctx).Save(invoice).Error; err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.ID, err)
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete invoice %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
