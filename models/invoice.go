package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvoiceType string

const (
	InvoiceTypeRecurring InvoiceType = "recurring"
	InvoiceTypeCustom    InvoiceType = "custom"
)

// InvoiceItem is one line of a custom invoice. Items have no identity; their
// order is rendering order.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Invoice is either contract-derived (recurring) or carries its own items
// (custom). Currency, InvoiceType and ContractID are optional so that invoices
// stored before those fields existed still load.
type Invoice struct {
	ID            string                           `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt     time.Time                        `json:"createdAt"`
	UpdatedAt     time.Time                        `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt                   `gorm:"index" json:"-"`
	InvoiceNumber string                           `gorm:"size:64;not null;index" json:"invoiceNumber"`
	ClientID      string                           `gorm:"size:36;not null;index" json:"clientId"`
	IssueDate     string                           `gorm:"size:32;not null;index" json:"issueDate"`
	DueDate       string                           `gorm:"size:32;not null" json:"dueDate"`
	Total         float64                          `gorm:"not null" json:"total"`
	Items         datatypes.JSONSlice[InvoiceItem] `json:"items,omitempty"`
	Currency      string                           `gorm:"size:10" json:"currency,omitempty"`
	InvoiceType   InvoiceType                      `gorm:"size:20" json:"invoiceType,omitempty"`
	ContractID    *string                          `gorm:"size:36;index" json:"contractId,omitempty"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}

// Type classifies the invoice. An explicit InvoiceType wins; otherwise the
// invoice is custom iff it carries at least one item.
func (inv *Invoice) Type() InvoiceType {
	if inv.InvoiceType != "" {
		return inv.InvoiceType
	}
	if len(inv.Items) > 0 {
		return InvoiceTypeCustom
	}
	return InvoiceTypeRecurring
}

var ErrInvalidDate = errors.New("invalid ISO date")

const isoDate = "2006-01-02"

// ParseISODate parses "YYYY-MM-DD", or an RFC 3339 timestamp. The calendar
// fields are kept as written: no time zone conversion is applied, so
// "2025-03-01" is March everywhere.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(isoDate, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// FormatISODate is the inverse of ParseISODate for date-only values.
func FormatISODate(t time.Time) string {
	return t.Format(isoDate)
}
