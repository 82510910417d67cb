// Package currencyutils provides monetary parsing for statement amounts whose
// locale is unknown: both "1.234,56" and "1,234.56" must resolve to the same
// value, without any locale metadata on the input file.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"rmoreira/extrato-csv/internal/logging"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// currencySymbols matches currency markers and whitespace that may surround a
// statement amount, e.g. "R$ 1.234,56", "$1,234.56", "CHF 1'234.56".
var currencySymbols = regexp.MustCompile(`[R€$£¥₣₤₧₹₺₽\sCHF]+|['’]`)

// ParseMonetaryValue converts a raw textual amount into a signed decimal.
// Unparseable input yields decimal.Zero with a logged warning; this function
// never returns an error so a single bad cell cannot abort a whole statement.
func ParseMonetaryValue(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}

	// Already a plain number: no locale inference needed.
	if amount, err := decimal.NewFromString(trimmed); err == nil {
		return amount
	}

	standardized := StandardizeAmount(trimmed)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		log.WithField(logging.FieldValue, raw).Warn("Could not parse monetary value, assuming 0.0")
		return decimal.Zero
	}
	return amount
}

// StandardizeAmount rewrites a locale-ambiguous amount string into the
// canonical dot-decimal form accepted by decimal.NewFromString.
//
// Inference rules, applied after stripping currency symbols:
//   - both separators present: the one appearing last is the decimal
//     separator, the other marks thousands ("1.234,56" and "1,234.56" both
//     become "1234.56")
//   - single comma, no dot: a trailing group of one or two digits means the
//     comma is decimal ("123,45"); a three-digit group means thousands
//     ("1,234")
//   - multiple commas, no dot: commas are thousands separators
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format: 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format: 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Comma used as decimal separator: 123,45
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Thousands separators: 1,234 or 1,234,567
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// IsExpense reports whether an amount belongs to the expense partition.
func IsExpense(amount decimal.Decimal) bool {
	return amount.IsNegative()
}
