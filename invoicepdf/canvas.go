package invoicepdf

// Font identifies one of the embedded fonts of a document.
type Font struct {
	Family string
	Style  string // "" regular, "B" bold
}

// Fonts are the two faces every invoice is drawn with.
type Fonts struct {
	Regular Font
	Bold    Font
}

// Canvas is a single page addressed in PDF user space: points, origin at the
// bottom-left corner, y growing upwards. Text is placed by its baseline.
//
// Drawing errors are sticky on the underlying document and surface when it is
// serialized, so the drawing methods return nothing.
type Canvas interface {
	Size() (width, height float64)
	Text(s string, x, y float64, font Font, size float64, color Color)
	Line(x1, y1, x2, y2, width float64, color Color)
	// Rect strokes the outline of the rectangle whose lower-left corner is (x, y).
	Rect(x, y, w, h, width float64, color Color)
	TextWidth(s string, font Font, size float64) float64
}
