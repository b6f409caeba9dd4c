package invoicepdf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/invoicer/models"
)

type drawOp struct {
	Kind      string
	Text      string
	X, Y      float64
	X2, Y2    float64
	W, H      float64
	Font      Font
	Size      float64
	Color     Color
	LineWidth float64
}

// recorder logs drawing calls and measures text with a real document, so
// widths match what the PDF would contain.
type recorder struct {
	measure *Document
	ops     []drawOp
}

func newRecorder(t *testing.T) (*recorder, Fonts) {
	t.Helper()
	doc := NewDocument(DocumentInfo{})
	fonts, err := doc.EmbedFonts()
	require.NoError(t, err)
	return &recorder{measure: doc}, fonts
}

func (r *recorder) Size() (float64, float64) { return r.measure.Size() }

func (r *recorder) TextWidth(s string, font Font, size float64) float64 {
	return r.measure.TextWidth(s, font, size)
}

func (r *recorder) Text(s string, x, y float64, font Font, size float64, color Color) {
	r.ops = append(r.ops, drawOp{Kind: "text", Text: s, X: x, Y: y, Font: font, Size: size, Color: color})
}

func (r *recorder) Line(x1, y1, x2, y2, width float64, color Color) {
	r.ops = append(r.ops, drawOp{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Color: color})
}

func (r *recorder) Rect(x, y, w, h, width float64, color Color) {
	r.ops = append(r.ops, drawOp{Kind: "rect", X: x, Y: y, W: w, H: h, LineWidth: width, Color: color})
}

// texts returns the drawn strings in drawing order.
func (r *recorder) texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// find returns the first text op whose text starts with prefix.
func (r *recorder) find(prefix string) (drawOp, bool) {
	for _, op := range r.ops {
		if op.Kind == "text" && strings.HasPrefix(op.Text, prefix) {
			return op, true
		}
	}
	return drawOp{}, false
}

type fakeContracts struct {
	byID     map[string]*models.Contract
	byClient map[string][]models.Contract
	err      error
}

func (f *fakeContracts) GetContractByID(_ context.Context, id string) (*models.Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeContracts) GetContractsByClientID(_ context.Context, clientID string) ([]models.Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClient[clientID], nil
}

func testContract() models.Contract {
	return models.Contract{
		ID:                  "contract-1",
		ClientID:            "client-1",
		DescriptionTemplate: "Development services for {{month}} {{year}}",
		UnitPrice:           300000,
		Currency:            "EUR",
		Quantity:            1,
		DueDays:             45,
		DueDateMethod:       models.DueDateDays,
	}
}

func testClient() models.Client {
	return models.Client{
		ID:          "client-1",
		CompanyName: "Acme Corporation",
		Address:     "123 Business Ave\n\nTokyo, Japan",
		Email:       "billing@acme.example.com",
	}
}

func testSettings() models.Settings {
	s := SampleSettings()
	s.InvoiceTemplate = string(StyleDefault)
	return s
}

func renderOps(t *testing.T, lookup ContractLookup, inv models.Invoice, client models.Client, settings models.Settings, style StyleID) *recorder {
	t.Helper()
	rec, fonts := newRecorder(t)
	rc, err := BuildContext(context.Background(), lookup, rec, fonts, &inv, &client, &settings)
	require.NoError(t, err)
	Render(rc, ResolveStyle(string(style)))
	return rec
}
