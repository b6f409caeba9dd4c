package invoicepdf

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yourusername/invoicer/models"
)

func TestGenerate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGenerator(contractLookup(), zap.New(core))

	inv, client, settings := contractInvoice(), testClient(), testSettings()
	res, err := g.Generate(context.Background(), &inv, &client, &settings, "")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(res.Bytes, []byte("%PDF-")))
	assert.Equal(t, "invoice-202503.pdf", res.Filename)
	assert.Equal(t, StyleDefault, res.Style)

	entries := logs.FilterMessage("invoice rendered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "invoicepdf", entries[0].LoggerName)
	assert.Equal(t, "inv-1", entries[0].ContextMap()["invoice_id"])
}

func TestGenerate_IsDeterministic(t *testing.T) {
	g := NewGenerator(contractLookup(), nil)
	inv, client, settings := contractInvoice(), testClient(), testSettings()

	a, err := g.Generate(context.Background(), &inv, &client, &settings, string(StyleSoftAccent))
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), &inv, &client, &settings, string(StyleSoftAccent))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a.Bytes, b.Bytes))
}

func TestGenerate_StyleSelection(t *testing.T) {
	g := NewGenerator(contractLookup(), nil)
	inv, client, settings := contractInvoice(), testClient(), testSettings()
	settings.InvoiceTemplate = string(StyleClassic)

	res, err := g.Generate(context.Background(), &inv, &client, &settings, "")
	require.NoError(t, err)
	assert.Equal(t, StyleClassic, res.Style)

	res, err = g.Generate(context.Background(), &inv, &client, &settings, string(StyleClean))
	require.NoError(t, err)
	assert.Equal(t, StyleClean, res.Style)

	res, err = g.Generate(context.Background(), &inv, &client, &settings, "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, StyleDefault, res.Style)
}

func TestGenerate_Errors(t *testing.T) {
	g := NewGenerator(contractLookup(), nil)
	client, settings := testClient(), testSettings()

	inv := contractInvoice()
	inv.IssueDate = ""
	_, err := g.Generate(context.Background(), &inv, &client, &settings, "")
	assert.ErrorIs(t, err, ErrInvalidIssueDate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inv = contractInvoice()
	_, err = g.Generate(ctx, &inv, &client, &settings, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateBatch(t *testing.T) {
	g := NewGenerator(contractLookup(), nil, WithBatchLimit(2))
	client, settings := testClient(), testSettings()

	var jobs []Job
	for _, date := range []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30"} {
		inv := contractInvoice()
		inv.IssueDate = date
		jobs = append(jobs, Job{Invoice: &inv, Client: &client, Settings: &settings})
	}

	results, err := g.GenerateBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	assert.Equal(t, "invoice-202501.pdf", results[0].Filename)
	assert.Equal(t, "invoice-202504.pdf", results[3].Filename)
}

func TestGenerateBatch_FailsOnFirstError(t *testing.T) {
	boom := errors.New("store unavailable")
	g := NewGenerator(&fakeContracts{err: boom}, nil)
	inv, client, settings := contractInvoice(), testClient(), testSettings()

	_, err := g.GenerateBatch(context.Background(), []Job{{Invoice: &inv, Client: &client, Settings: &settings}})
	assert.ErrorIs(t, err, boom)
}

func TestPreview(t *testing.T) {
	g := NewGenerator(&fakeContracts{err: errors.New("must not be called")}, nil)

	for _, tmpl := range Templates() {
		res, err := g.Preview(context.Background(), string(tmpl.ID))
		require.NoError(t, err)
		assert.Equal(t, tmpl.ID, res.Style)
		assert.Equal(t, "invoice-202501.pdf", res.Filename)
	}
}

func TestDocumentDate(t *testing.T) {
	inv := models.Invoice{IssueDate: "2025-03-31"}
	assert.Equal(t, "2025-03-31", models.FormatISODate(documentDate(&inv)))

	inv.IssueDate = "garbage"
	assert.Equal(t, int64(0), documentDate(&inv).Unix())
}
