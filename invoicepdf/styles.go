package invoicepdf

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

func rgb(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Palette holds the text and stroke colors of a style.
type Palette struct {
	Text     Color // body text and data
	Label    Color // "BILL TO:", remittance labels
	Emphasis Color // invoice title and amount due value
	Accent   Color
	Border   Color // table grid and dividers
}

type TableStyle struct {
	HeaderText Color
	LineWidth  float64
}

// StyleConfig is everything that may differ between visual styles. Layout
// geometry is not part of it: a style changes colors and stroke weights only.
type StyleConfig struct {
	Colors Palette
	Table  TableStyle
}

type StyleID string

const (
	StyleDefault    StyleID = "default"
	StyleClean      StyleID = "clean"
	StyleStandard   StyleID = "standard"
	StyleClassic    StyleID = "classic"
	StyleSoftAccent StyleID = "soft_accent"
)

// Template describes a selectable style for settings pages and previews.
type Template struct {
	ID          StyleID     `json:"id"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Style       StyleConfig `json:"-"`
}

var (
	black      = rgb(0, 0, 0)
	darkGray   = rgb(0.2, 0.2, 0.2)
	gray       = rgb(0.5, 0.5, 0.5)
	lightGray  = rgb(0.7, 0.7, 0.7)
	softIndigo = rgb(0.35, 0.35, 0.85)
)

var templateOrder = []StyleID{StyleDefault, StyleClean, StyleStandard, StyleClassic, StyleSoftAccent}

var templates = map[StyleID]Template{
	StyleDefault: {
		ID:          StyleDefault,
		Label:       "Default",
		Description: "Neutral and monochrome, a safe universal option",
		Style: StyleConfig{
			Colors: Palette{Text: black, Label: darkGray, Emphasis: black, Accent: black, Border: lightGray},
			Table:  TableStyle{HeaderText: black, LineWidth: 0.5},
		},
	},
	StyleClean: {
		ID:          StyleClean,
		Label:       "Clean",
		Description: "Modern, conservative with more white space",
		Style: StyleConfig{
			Colors: Palette{Text: darkGray, Label: gray, Emphasis: black, Accent: darkGray, Border: rgb(0.85, 0.85, 0.85)},
			Table:  TableStyle{HeaderText: darkGray, LineWidth: 0.5},
		},
	},
	StyleStandard: {
		ID:          StyleStandard,
		Label:       "Standard",
		Description: "Business & accounting friendly, structured",
		Style: StyleConfig{
			Colors: Palette{Text: black, Label: black, Emphasis: black, Accent: black, Border: gray},
			Table:  TableStyle{HeaderText: black, LineWidth: 1.0},
		},
	},
	StyleClassic: {
		ID:          StyleClassic,
		Label:       "Classic",
		Description: "Traditional, timeless with strong grid",
		Style: StyleConfig{
			Colors: Palette{Text: black, Label: black, Emphasis: black, Accent: black, Border: black},
			Table:  TableStyle{HeaderText: black, LineWidth: 1.0},
		},
	},
	StyleSoftAccent: {
		ID:          StyleSoftAccent,
		Label:       "Soft Accent",
		Description: "Modern premium with subtle indigo accents",
		Style: StyleConfig{
			Colors: Palette{Text: darkGray, Label: gray, Emphasis: softIndigo, Accent: softIndigo, Border: rgb(0.8, 0.8, 0.9)},
			Table:  TableStyle{HeaderText: softIndigo, LineWidth: 0.5},
		},
	},
}

// ResolveStyleID maps any string to a known style, falling back to
// StyleDefault.
func ResolveStyleID(id string) StyleID {
	if _, ok := templates[StyleID(id)]; ok {
		return StyleID(id)
	}
	return StyleDefault
}

// ResolveStyle returns the configuration for id, or the default style's.
func ResolveStyle(id string) StyleConfig {
	return templates[ResolveStyleID(id)].Style
}

// Templates lists the built-in styles in display order.
func Templates() []Template {
	out := make([]Template, 0, len(templateOrder))
	for _, id := range templateOrder {
		out = append(out, templates[id])
	}
	return out
}
