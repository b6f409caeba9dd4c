package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/billing"
	"github.com/yourusername/invoicer/invoicepdf"
	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/store"
)

type InvoiceHandler struct {
	store     *store.Store
	generator *invoicepdf.Generator
	billing   *billing.Service
	node      *snowflake.Node
	logger    *zap.Logger
}

func NewInvoiceHandler(st *store.Store, gen *invoicepdf.Generator, svc *billing.Service, node *snowflake.Node, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{store: st, generator: gen, billing: svc, node: node, logger: log}
}

// InvoiceRequest creates or replaces an invoice. A missing total is computed
// from the items. A missing number keeps the stored one, or is generated from
// the issue date for new invoices.
type InvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientID      string               `json:"clientId" binding:"required"`
	IssueDate     string               `json:"issueDate" binding:"required"`
	DueDate       string               `json:"dueDate" binding:"required"`
	Total         *float64             `json:"total" binding:"omitempty,gte=0"`
	Items         []models.InvoiceItem `json:"items" binding:"omitempty,dive"`
	Currency      string               `json:"currency" binding:"omitempty,len=3"`
	InvoiceType   models.InvoiceType   `json:"invoiceType" binding:"omitempty,oneof=recurring custom"`
	ContractID    *string              `json:"contractId"`
}

type GenerateRequest struct {
	Year int `json:"year" binding:"required"`
}

// bindInvoice validates the request and fills invoice from it. It writes the
// error response itself and reports whether the handler may continue.
func (h *InvoiceHandler) bindInvoice(c *gin.Context, invoice *models.Invoice) bool {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}

	issued, err := models.ParseISODate(req.IssueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issueDate must be YYYY-MM-DD"})
		return false
	}
	due, err := models.ParseISODate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD"})
		return false
	}

	ctx := c.Request.Context()
	client, err := h.store.GetClientByID(ctx, req.ClientID)
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return false
	}
	if client == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client does not exist"})
		return false
	}
	if req.ContractID != nil {
		contract, err := h.store.GetContractByID(ctx, *req.ContractID)
		if err != nil {
			internalError(c, h.logger, "Failed to load contract", err)
			return false
		}
		if contract == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contract does not exist"})
			return false
		}
	}

	if number := strings.TrimSpace(req.InvoiceNumber); number != "" {
		invoice.InvoiceNumber = number
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = billing.NewInvoiceNumber(h.node, issued)
	}
	invoice.ClientID = req.ClientID
	invoice.IssueDate = models.FormatISODate(issued)
	invoice.DueDate = models.FormatISODate(due)
	invoice.Items = req.Items
	invoice.Currency = strings.ToUpper(req.Currency)
	invoice.InvoiceType = req.InvoiceType
	invoice.ContractID = req.ContractID
	if req.Total != nil {
		invoice.Total = *req.Total
	} else {
		invoice.Total = itemsTotal(req.Items)
	}
	return true
}

func itemsTotal(items []models.InvoiceItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice)))
	}
	return total.InexactFloat64()
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	filter := store.InvoiceFilter{ClientID: c.Query("clientId")}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		filter.Year = year
	}

	invoices, err := h.store.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		internalError(c, h.logger, "Failed to list invoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if !h.bindInvoice(c, &invoice) {
		return
	}
	if err := h.store.CreateInvoice(c.Request.Context(), &invoice); err != nil {
		internalError(c, h.logger, "Failed to create invoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	invoice, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	if !h.bindInvoice(c, invoice) {
		return
	}
	if err := h.store.UpdateInvoice(c.Request.Context(), invoice); err != nil {
		internalError(c, h.logger, "Failed to update invoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	deleted, err := h.store.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to delete invoice", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadPDF renders one invoice. ?template= previews another style and
// ?inline=1 asks the browser to display rather than save the file.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	invoice, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	client, err := h.store.GetClientByID(ctx, invoice.ClientID)
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return
	}
	if client == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invoice client no longer exists"})
		return
	}
	settings, err := h.store.EnsureSettings(ctx)
	if err != nil {
		internalError(c, h.logger, "Failed to load settings", err)
		return
	}

	res, err := h.generator.Generate(ctx, invoice, client, settings, c.Query("template"))
	if errors.Is(err, invoicepdf.ErrInvalidIssueDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(c, h.logger, "Failed to generate PDF", err)
		return
	}

	writePDF(c, res, c.Query("inline") == "1")
}

// Export renders every invoice issued in ?year= and returns them as a zip.
// Invoices whose client was deleted are left out.
func (h *InvoiceHandler) Export(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter year is required"})
		return
	}

	ctx := c.Request.Context()
	invoices, err := h.store.ListInvoicesByYear(ctx, year)
	if err != nil {
		internalError(c, h.logger, "Failed to list invoices", err)
		return
	}
	settings, err := h.store.EnsureSettings(ctx)
	if err != nil {
		internalError(c, h.logger, "Failed to load settings", err)
		return
	}

	clients := map[string]*models.Client{}
	jobs := make([]invoicepdf.Job, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		client, seen := clients[inv.ClientID]
		if !seen {
			if client, err = h.store.GetClientByID(ctx, inv.ClientID); err != nil {
				internalError(c, h.logger, "Failed to load client", err)
				return
			}
			clients[inv.ClientID] = client
		}
		if client == nil {
			h.logger.Warn("skipping invoice of deleted client",
				zap.String("invoice_id", inv.ID), zap.String("client_id", inv.ClientID))
			continue
		}
		jobs = append(jobs, invoicepdf.Job{Invoice: inv, Client: client, Settings: settings})
	}

	results, err := h.generator.GenerateBatch(ctx, jobs)
	if err != nil {
		internalError(c, h.logger, "Failed to generate PDFs", err)
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := map[string]int{}
	for _, res := range results {
		f, err := zw.Create(uniqueName(names, res.Filename))
		if err == nil {
			_, err = f.Write(res.Bytes)
		}
		if err != nil {
			internalError(c, h.logger, "Failed to build archive", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		internalError(c, h.logger, "Failed to build archive", err)
		return
	}

	h.logger.Info("invoices exported", zap.Int("year", year), zap.Int("count", len(results)))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": fmt.Sprintf("invoices-%d.zip", year),
	}))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// uniqueName suffixes repeated archive entries: a.pdf, a-2.pdf, a-3.pdf.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		name, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s-%d%s", name, n, ext)
}

// Generate creates or refreshes the recurring invoices of a year.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.billing.GenerateForYear(c.Request.Context(), req.Year)
	switch {
	case errors.Is(err, billing.ErrInvalidYear):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, billing.ErrNoContracts):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		internalError(c, h.logger, "Failed to generate invoices", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *InvoiceHandler) loadInvoice(c *gin.Context) (*models.Invoice, bool) {
	invoice, err := h.store.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load invoice", err)
		return nil, false
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return nil, false
	}
	return invoice, true
}

func writePDF(c *gin.Context, res *invoicepdf.Result, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": res.Filename}))
	c.Header("X-Invoice-Style", string(res.Style))
	c.Data(http.StatusOK, "application/pdf", res.Bytes)
}
