package invoicepdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStyle_Fallback(t *testing.T) {
	def := ResolveStyle(string(StyleDefault))

	assert.Equal(t, def, ResolveStyle("nonexistent"))
	assert.Equal(t, def, ResolveStyle(""))
	assert.Equal(t, StyleDefault, ResolveStyleID("Classic"))
	assert.Equal(t, StyleClassic, ResolveStyleID("classic"))
}

func TestTemplates(t *testing.T) {
	list := Templates()

	ids := make([]StyleID, 0, len(list))
	for _, tmpl := range list {
		ids = append(ids, tmpl.ID)
		assert.NotEmpty(t, tmpl.Label)
		assert.NotEmpty(t, tmpl.Description)
		assert.Greater(t, tmpl.Style.Table.LineWidth, 0.0)
	}
	assert.Equal(t, []StyleID{StyleDefault, StyleClean, StyleStandard, StyleClassic, StyleSoftAccent}, ids)

	// Callers get a copy of the registry order.
	list[0].ID = "mutated"
	assert.Equal(t, StyleDefault, Templates()[0].ID)
}

func TestChannel(t *testing.T) {
	r, g, b := channels(Color{R: 0.35, G: -1, B: 2})
	assert.Equal(t, 89, r)
	assert.Equal(t, 0, g)
	assert.Equal(t, 255, b)
}
