package invoicepdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/invoicer/models"
)

// ErrRender wraps failures of the PDF substrate: font embedding and
// serialization.
var ErrRender = errors.New("invoice rendering failed")

const defaultBatchLimit = 4

// Result is a rendered invoice.
type Result struct {
	Bytes    []byte
	Filename string
	Style    StyleID
}

// Job is one entry of a batch.
type Job struct {
	Invoice  *models.Invoice
	Client   *models.Client
	Settings *models.Settings
	Style    string
}

// Generator renders invoices. It holds no per-render state and is safe for
// concurrent use.
type Generator struct {
	contracts  ContractLookup
	logger     *zap.Logger
	batchLimit int
}

type Option func(*Generator)

// WithBatchLimit bounds how many invoices GenerateBatch renders at once.
func WithBatchLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.batchLimit = n
		}
	}
}

func NewGenerator(contracts ContractLookup, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		contracts:  contracts,
		logger:     logger.Named("invoicepdf"),
		batchLimit: defaultBatchLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders inv as a one-page A4 PDF. styleOverride, when not empty,
// replaces the style selected in settings; unknown styles fall back to the
// default one. Equal inputs produce identical bytes.
func (g *Generator) Generate(ctx context.Context, inv *models.Invoice, client *models.Client, settings *models.Settings, styleOverride string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	styleID := ResolveStyleID(settings.InvoiceTemplate)
	if styleOverride != "" {
		styleID = ResolveStyleID(styleOverride)
	}

	doc := NewDocument(DocumentInfo{
		Title:     inv.InvoiceNumber,
		Author:    settings.FreelancerName,
		Subject:   "Invoice for " + client.CompanyName,
		CreatedAt: documentDate(inv),
	})
	fonts, err := doc.EmbedFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	rc, err := BuildContext(ctx, g.contracts, doc, fonts, inv, client, settings)
	if err != nil {
		return nil, err
	}
	Render(rc, templates[styleID].Style)

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	filename := FormatFilename(settings.FilenameTemplate, inv, client, settings)
	g.logger.Debug("invoice rendered",
		zap.String("invoice_id", inv.ID),
		zap.String("style", string(styleID)),
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
	)

	return &Result{Bytes: data, Filename: filename, Style: styleID}, nil
}

// GenerateBatch renders jobs concurrently, at most batchLimit at a time.
// Results are in job order. The first failure cancels the remaining jobs.
func (g *Generator) GenerateBatch(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.batchLimit)

	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			res, err := g.Generate(ctx, job.Invoice, job.Client, job.Settings, job.Style)
			if err != nil {
				return fmt.Errorf("invoice %s: %w", job.Invoice.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// documentDate picks the PDF creation date from the invoice itself so that
// re-rendering the same invoice is reproducible.
func documentDate(inv *models.Invoice) time.Time {
	if !inv.CreatedAt.IsZero() {
		return inv.CreatedAt.UTC()
	}
	if d, err := models.ParseISODate(inv.IssueDate); err == nil {
		return d
	}
	return time.Unix(0, 0).UTC()
}
