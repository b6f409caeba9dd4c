package invoicepdf

import (
	"strings"

	"github.com/yourusername/invoicer/models"
)

// MaxRows is the number of line items the table holds. Items past it are not
// drawn.
const MaxRows = 7

const ellipsis = "..."

// Table geometry. Column 2 (description) takes whatever width is left.
const (
	tableTopOffset  = 280.0
	headerRowHeight = 24.0
	rowHeight       = 22.0
	qtyColWidth     = 80.0
	priceColWidth   = 80.0
	totalColWidth   = 70.0
	cellPadding     = 10.0
	amountPadding   = 5.0
)

const (
	billToOffset    = 140.0
	remittancePitch = 16.0
	remittanceValue = 90.0
	footerY         = 60.0
	footerRuleGap   = 20.0
)

// linkColor tints email addresses on every style.
var linkColor = rgb(0, 0, 0.8)

const (
	sizeTitle   = 28.0
	sizeName    = 11.0
	sizeCompany = 10.0
	sizeBody    = 9.0
	sizeCell    = 10.0
	sizeHeading = 10.0
)

// tableLayout holds the column edges derived from the page width.
type tableLayout struct {
	left, right, top, bottom float64
	headerBottom             float64
	qtyX, descX, priceX      float64
	totalX                   float64
	descWidth                float64
}

func newTableLayout(width, height float64) tableLayout {
	t := tableLayout{
		left:  Margin,
		right: width - Margin,
		top:   height - tableTopOffset,
	}
	t.bottom = t.top - (headerRowHeight + MaxRows*rowHeight)
	t.headerBottom = t.top - headerRowHeight
	t.descWidth = (t.right - t.left) - qtyColWidth - priceColWidth - totalColWidth
	t.qtyX = t.left
	t.descX = t.qtyX + qtyColWidth
	t.priceX = t.descX + t.descWidth
	t.totalX = t.priceX + priceColWidth
	return t
}

// maxDescriptionWidth is the usable width of the description column.
func (t tableLayout) maxDescriptionWidth() float64 {
	return t.descWidth - 2*cellPadding
}

type row struct {
	quantity    string
	description string
	unitPrice   string
	total       string
}

// renderer carries the per-call drawing state. It is created by Render and
// discarded when Render returns.
type renderer struct {
	rc     RenderContext
	style  StyleConfig
	page   Canvas
	width  float64
	height float64
}

// Render draws the whole invoice onto rc.Page. The layout is the same for
// every style; style only supplies colors and stroke widths.
func Render(rc RenderContext, style StyleConfig) {
	w, h := rc.Page.Size()
	r := &renderer{rc: rc, style: style, page: rc.Page, width: w, height: h}

	r.issuer()
	r.metadata()
	r.billTo()
	table := newTableLayout(w, h)
	r.tableGrid(table)
	r.tableRows(table)
	y := r.amountDue(table)
	y = r.currencyNote(y)
	y = r.remittance(y)
	r.terms(y)
	r.footer()
}

func (r *renderer) text(s string, x, y float64, font Font, size float64, color Color) {
	r.page.Text(s, x, y, font, size, color)
}

// rightText draws s so that it ends at right, using its measured width.
func (r *renderer) rightText(s string, right, y float64, font Font, size float64, color Color) {
	r.text(s, right-r.page.TextWidth(s, font, size), y, font, size, color)
}

func (r *renderer) issuer() {
	s := r.rc.Settings
	fonts := r.rc.Fonts
	y := r.height - Margin

	r.text(s.FreelancerName, Margin, y, fonts.Bold, sizeName, r.style.Colors.Text)
	y -= 16
	for _, line := range addressLines(s.Address) {
		r.text(line, Margin, y, fonts.Regular, sizeBody, r.style.Colors.Text)
		y -= 12
	}
	if s.Email != "" {
		r.text(s.Email, Margin, y, fonts.Regular, sizeBody, linkColor)
	}
}

func (r *renderer) metadata() {
	fonts := r.rc.Fonts
	right := r.width - Margin
	y := r.height - Margin

	r.rightText("INVOICE", right, y, fonts.Bold, sizeTitle, r.style.Colors.Emphasis)
	y -= 30
	for _, line := range []string{
		r.rc.InvoiceNumText,
		"INVOICE DATE: " + r.rc.Invoice.IssueDate,
		"DUE DATE: " + r.rc.Invoice.DueDate,
	} {
		r.rightText(line, right, y, fonts.Regular, sizeBody, r.style.Colors.Text)
		y -= 14
	}
}

// billTo starts at a fixed offset from the top of the page regardless of how
// tall the issuer block is.
func (r *renderer) billTo() {
	c := r.rc.Client
	fonts := r.rc.Fonts
	y := r.height - billToOffset

	r.text("BILL TO:", Margin, y, fonts.Bold, sizeBody, r.style.Colors.Label)
	y -= 14
	r.text(c.CompanyName, Margin, y, fonts.Regular, sizeCompany, r.style.Colors.Text)
	y -= 12
	for _, line := range addressLines(c.Address) {
		r.text(line, Margin, y, fonts.Regular, sizeBody, r.style.Colors.Text)
		y -= 12
	}
	if c.Email != "" {
		r.text("Email: "+c.Email, Margin, y, fonts.Regular, sizeBody, linkColor)
	}
}

func (r *renderer) tableGrid(t tableLayout) {
	border := r.style.Colors.Border
	lw := r.style.Table.LineWidth

	r.page.Rect(t.left, t.bottom, t.right-t.left, t.top-t.bottom, lw, border)
	for _, x := range []float64{t.descX, t.priceX, t.totalX} {
		r.page.Line(x, t.top, x, t.bottom, lw, border)
	}
	r.page.Line(t.left, t.headerBottom, t.right, t.headerBottom, lw, border)
	for i := 1; i < MaxRows; i++ {
		y := t.headerBottom - float64(i)*rowHeight
		r.page.Line(t.left, y, t.right, y, lw*0.5, border)
	}

	bold := r.rc.Fonts.Bold
	header := r.style.Table.HeaderText
	y := t.top - 16
	r.text("QUANTITY", t.qtyX+10, y, bold, sizeBody, header)
	r.text("DESCRIPTION", t.descX+10, y, bold, sizeBody, header)
	r.text("UNIT PRICE", t.priceX+5, y, bold, sizeBody, header)
	r.text("TOTAL", t.totalX+15, y, bold, sizeBody, header)
}

// rows returns the table contents: the custom items capped at MaxRows, or one
// row synthesized from the contract. The synthesized row's total is the
// stored invoice total, which stays authoritative if the contract changed.
func (r *renderer) rows() []row {
	rc := r.rc
	if rc.HasCustomItems && len(rc.Items) > 0 {
		items := rc.Items
		if len(items) > MaxRows {
			items = items[:MaxRows]
		}
		rows := make([]row, 0, len(items))
		for _, it := range items {
			rows = append(rows, row{
				quantity:    formatQuantity(it.Quantity),
				description: it.Description,
				unitPrice:   FormatAmount(it.UnitPrice, rc.Currency),
				total:       formatDecimal(lineTotal(it.Quantity, it.UnitPrice)) + " " + rc.Currency,
			})
		}
		return rows
	}
	if rc.Contract != nil {
		return []row{contractRow(rc.Contract, rc)}
	}
	return nil
}

func contractRow(c *models.Contract, rc RenderContext) row {
	return row{
		quantity:    formatQuantity(c.Quantity),
		description: ExpandDescription(c.DescriptionTemplate, rc.IssueDate),
		unitPrice:   FormatAmount(c.UnitPrice, rc.Currency),
		total:       FormatAmount(rc.Invoice.Total, rc.Currency),
	}
}

func (r *renderer) tableRows(t tableLayout) {
	regular := r.rc.Fonts.Regular
	color := r.style.Colors.Text

	for i, line := range r.rows() {
		y := t.headerBottom - 15 - float64(i)*rowHeight

		qtyWidth := r.page.TextWidth(line.quantity, regular, sizeCell)
		r.text(line.quantity, t.qtyX+(qtyColWidth-qtyWidth)/2, y, regular, sizeCell, color)

		desc := truncate(r.page, line.description, regular, sizeCell, t.maxDescriptionWidth())
		r.text(desc, t.descX+cellPadding, y, regular, sizeCell, color)

		r.rightText(line.unitPrice, t.totalX-amountPadding, y, regular, sizeCell, color)
		r.rightText(line.total, t.right-amountPadding, y, regular, sizeCell, color)
	}
}

// amountDue draws the box under the unit price and total columns and returns
// its baseline.
func (r *renderer) amountDue(t tableLayout) float64 {
	border := r.style.Colors.Border
	lw := r.style.Table.LineWidth
	bold := r.rc.Fonts.Bold

	y := t.bottom - 25
	r.page.Rect(t.priceX, y-5, priceColWidth+totalColWidth, 22, lw, border)
	r.page.Line(t.totalX, y+17, t.totalX, y-5, lw, border)

	r.text("AMOUNT DUE", t.priceX+10, y+2, bold, sizeBody, r.style.Colors.Label)
	value := FormatAmount(r.rc.Invoice.Total, r.rc.Currency)
	r.rightText(value, t.right-amountPadding, y+2, bold, sizeBody, r.style.Colors.Emphasis)
	return y
}

func (r *renderer) currencyNote(y float64) float64 {
	y -= 30
	r.text("All amounts in "+currencyName(r.rc.Currency), Margin, y, r.rc.Fonts.Regular, sizeBody, r.style.Colors.Text)
	return y
}

// currencyName expands JPY only; every other code prints as is.
func currencyName(code string) string {
	if code == "JPY" {
		return "Japanese Yen (JPY)"
	}
	return code
}

// remittance draws the banking block. An empty field leaves its line blank
// rather than pulling the following lines up.
func (r *renderer) remittance(y float64) float64 {
	s := r.rc.Settings
	fonts := r.rc.Fonts
	colors := r.style.Colors
	const heading = "REMITTANCE ADVICE:"

	y -= 35
	r.text(heading, Margin, y, fonts.Bold, sizeHeading, colors.Label)
	underline := r.page.TextWidth(heading, fonts.Bold, sizeHeading)
	r.page.Line(Margin, y-2, Margin+underline, y-2, r.style.Table.LineWidth, colors.Border)

	y -= 20
	r.text("Direct Deposit", Margin, y, fonts.Bold, sizeBody, colors.Text)

	bankCurrency := s.BankCurrency
	if bankCurrency == "" {
		bankCurrency = r.rc.Currency
	}
	for _, f := range []struct{ label, value string }{
		{"Bank Name", s.BankName},
		{"Account Holder", s.AccountHolder},
		{"Account Number", s.AccountNumber},
		{"SWIFT", s.Swift},
		{"Bank Country", s.BankCountry},
		{"Bank Currency", bankCurrency},
	} {
		y -= remittancePitch
		if f.value == "" {
			continue
		}
		r.text(f.label, Margin, y, fonts.Regular, sizeBody, colors.Label)
		r.text(": "+f.value, Margin+remittanceValue, y, fonts.Regular, sizeBody, colors.Text)
	}
	return y
}

func (r *renderer) terms(y float64) {
	regular := r.rc.Fonts.Regular
	color := r.style.Colors.Text

	y -= 25
	r.text(r.rc.PaymentTerms, Margin, y, regular, sizeBody, color)
	y -= 16
	if email := r.rc.Settings.Email; email != "" {
		r.text("If you have any questions concerning this invoice, contact "+email, Margin, y, regular, sizeBody, color)
	}
}

func (r *renderer) footer() {
	r.page.Line(Margin, footerY+footerRuleGap, r.width-Margin, footerY+footerRuleGap, r.style.Table.LineWidth, r.style.Colors.Border)

	const thanks = "THANK YOU FOR YOUR BUSINESS!"
	bold := r.rc.Fonts.Bold
	w := r.page.TextWidth(thanks, bold, sizeHeading)
	r.text(thanks, (r.width-w)/2, footerY, bold, sizeHeading, r.style.Colors.Text)
}

// addressLines splits a newline-delimited address and drops blank lines.
func addressLines(address string) []string {
	var lines []string
	for _, line := range strings.Split(address, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// truncate shortens s one character at a time until s plus an ellipsis fits
// in maxWidth. Text that already fits is returned unchanged.
func truncate(c Canvas, s string, font Font, size, maxWidth float64) string {
	if c.TextWidth(s, font, size) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if c.TextWidth(string(runes)+ellipsis, font, size) <= maxWidth {
			break
		}
	}
	return string(runes) + ellipsis
}
