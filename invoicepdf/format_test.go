package invoicepdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{150000, "150,000"},
		{1234.5, "1,234.5"},
		{1234567.891, "1,234,567.891"},
		{0.1235, "0.124"},
		{1.0005, "1.001"},
		{999, "999"},
		{1000, "1,000"},
		{-1500, "-1,500"},
		{12.3456, "12.346"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150,000 JPY", FormatAmount(150000, "JPY"))
	assert.Equal(t, "99.99 USD", FormatAmount(99.99, "USD"))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "0.3", formatDecimal(lineTotal(3, 0.1)))
	assert.Equal(t, "50,000", formatDecimal(lineTotal(10, 5000)))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "1", formatQuantity(1))
	assert.Equal(t, "2.5", formatQuantity(2.5))
	assert.Equal(t, "0.25", formatQuantity(0.25))
}

func TestExpandDescription(t *testing.T) {
	date := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Services for March 2025", ExpandDescription("Services for {{month}} {{year}}", date))
	assert.Equal(t, "Flat fee", ExpandDescription("Flat fee", date))
	assert.Equal(t, "{month}", ExpandDescription("{month}", date))
}
