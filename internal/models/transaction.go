// Package models defines the data types shared across the statement pipeline.
package models

import (
	"github.com/shopspring/decimal"
)

// RawTable is an untyped tabular statement as read from disk: a header row
// plus data rows, before any schema resolution.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// IsEmpty reports whether the table has no data rows.
func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Transaction is one normalized statement row. It is created by the column
// normalizer, categorized exactly once by the orchestrator, and immutable
// afterwards.
type Transaction struct {
	// Date is the statement date, passed through as text. Inputs carry many
	// date formats and none of the downstream logic depends on calendar
	// semantics, so no parse is attempted.
	Date string `json:"data" csv:"data"`

	// Description is the canonical description (see textutils.CleanDescription),
	// used as the cache and categorization key.
	Description string `json:"descricao" csv:"descricao"`

	// RawDescription preserves the original text before canonicalization.
	RawDescription string `json:"-" csv:"-"`

	// Amount is the signed monetary value. Negative amounts are expenses,
	// non-negative amounts are income.
	Amount decimal.Decimal `json:"valor" csv:"valor"`

	// Category is empty until categorization completes.
	Category string `json:"categoria" csv:"categoria"`
}

// IsExpense reports whether the transaction belongs to the expense partition.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Categoria string          `json:"categoria"`
	Valor     decimal.Decimal `json:"valor"`
}

// Assignment pairs a canonical description with the category label a strategy
// chose for it.
type Assignment struct {
	Description string
	Category    string
}
