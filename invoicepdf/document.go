package invoicepdf

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// A4 in points. It is the only page size invoices are produced in.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 50.0
)

// DocumentInfo goes into the PDF information dictionary. CreatedAt must come
// from the input data, never from the clock, or output stops being
// reproducible.
type DocumentInfo struct {
	Title     string
	Author    string
	Subject   string
	CreatedAt time.Time
}

// Document is a single-page gofpdf document implementing Canvas.
type Document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

var _ Canvas = (*Document)(nil)

func NewDocument(info DocumentInfo) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(info.CreatedAt.UTC())
	pdf.SetCreator("invoicer", true)
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Subject != "" {
		pdf.SetSubject(info.Subject, true)
	}
	pdf.AddPage()

	return &Document{
		pdf: pdf,
		// Core fonts are cp1252; translate UTF-8 input so accented Latin text
		// survives.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// EmbedFonts registers the regular and bold Helvetica core fonts.
func (d *Document) EmbedFonts() (Fonts, error) {
	fonts := Fonts{
		Regular: Font{Family: "Helvetica"},
		Bold:    Font{Family: "Helvetica", Style: "B"},
	}
	d.pdf.SetFont(fonts.Bold.Family, fonts.Bold.Style, 10)
	d.pdf.SetFont(fonts.Regular.Family, fonts.Regular.Style, 10)
	if err := d.pdf.Error(); err != nil {
		return Fonts{}, fmt.Errorf("failed to embed fonts: %w", err)
	}
	return fonts, nil
}

func (d *Document) Size() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *Document) Text(s string, x, y float64, font Font, size float64, color Color) {
	d.pdf.SetFont(font.Family, font.Style, size)
	d.pdf.SetTextColor(channels(color))
	d.pdf.Text(x, d.flip(y), d.tr(s))
}

func (d *Document) Line(x1, y1, x2, y2, width float64, color Color) {
	d.pdf.SetDrawColor(channels(color))
	d.pdf.SetLineWidth(width)
	d.pdf.Line(x1, d.flip(y1), x2, d.flip(y2))
}

func (d *Document) Rect(x, y, w, h, width float64, color Color) {
	d.pdf.SetDrawColor(channels(color))
	d.pdf.SetLineWidth(width)
	d.pdf.Rect(x, d.flip(y+h), w, h, "D")
}

func (d *Document) TextWidth(s string, font Font, size float64) float64 {
	d.pdf.SetFont(font.Family, font.Style, size)
	return d.pdf.GetStringWidth(d.tr(s))
}

// Bytes serializes the document. The document must not be drawn on after.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// flip converts a bottom-up y into gofpdf's top-down coordinate.
func (d *Document) flip(y float64) float64 {
	_, h := d.pdf.GetPageSize()
	return h - y
}

func channels(c Color) (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
