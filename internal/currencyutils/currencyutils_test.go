package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMonetaryValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"brazilian format", "1.234,56", "1234.56"},
		{"us format", "1,234.56", "1234.56"},
		{"comma decimal", "123,45", "123.45"},
		{"comma thousands", "1,234", "1234"},
		{"small comma decimal", "1,23", "1.23"},
		{"multiple comma thousands", "1,234,567", "1234567"},
		{"plain dot decimal", "123.45", "123.45"},
		{"plain integer", "1234", "1234"},
		{"negative brazilian", "-45,90", "-45.9"},
		{"negative with symbol", "R$ -45,90", "-45.9"},
		{"currency symbol", "R$ 1.234,56", "1234.56"},
		{"dollar symbol", "$1,234.56", "1234.56"},
		{"full brazilian", "1.234.567,89", "1234567.89"},
		{"unparseable", "abc", "0"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			got := ParseMonetaryValue(tt.input)
			assert.True(t, expected.Equal(got),
				"ParseMonetaryValue(%q) = %s, want %s", tt.input, got, expected)
		})
	}
}

func TestParseMonetaryValueNeverPanics(t *testing.T) {
	inputs := []string{",", ".", ",,", "..", "-", "R$", "1,2,3.4,5", "--12"}
	for _, input := range inputs {
		assert.NotPanics(t, func() { ParseMonetaryValue(input) }, "input %q", input)
	}
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "1234.56", StandardizeAmount("1.234,56"))
	assert.Equal(t, "1234.56", StandardizeAmount("1,234.56"))
	assert.Equal(t, "123.45", StandardizeAmount("123,45"))
	assert.Equal(t, "1234", StandardizeAmount("1,234"))
	assert.Equal(t, "1234.56", StandardizeAmount("CHF 1'234.56"))
}

func TestIsExpense(t *testing.T) {
	assert.True(t, IsExpense(decimal.NewFromFloat(-45.90)))
	assert.False(t, IsExpense(decimal.Zero))
	assert.False(t, IsExpense(decimal.NewFromFloat(1200)))
}
