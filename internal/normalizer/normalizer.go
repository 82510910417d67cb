// Package normalizer resolves free-form statement columns onto the canonical
// data/descricao/valor schema and canonicalizes descriptions. Every statement
// passes through here exactly once before categorization.
package normalizer

import (
	"strings"

	"rmoreira/extrato-csv/internal/currencyutils"
	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/parsererror"
	"rmoreira/extrato-csv/internal/textutils"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Candidate column names, matched case-insensitively after trimming. The
// lists come from the statement formats of the banks this tool has seen.
var (
	dateAliases = []string{"data", "date", "dt", "data_lancamento"}

	descriptionAliases = []string{
		"descricao", "descrição", "historico", "histórico",
		"description", "detalhe", "title", "memo",
	}

	amountAliases = []string{"valor", "amount", "vl", "montante"}

	// Identifier columns are dropped outright: they are never semantically
	// required and, when mistaken for a description, corrupt the
	// categorization keys.
	idAliases = []string{"id", "identificador", "codigo", "código", "uuid"}
)

// Normalize maps a raw table onto canonical transactions. Column resolution
// is by alias lookup first; columns that stay unresolved fall back to the
// table's 1st/2nd/3rd non-identifier columns for date/description/amount
// respectively. The positional fallback is deliberate and risky: a file with
// an unexpected column order and no recognizable header is silently mis-mapped.
func Normalize(table models.RawTable) ([]models.Transaction, error) {
	if len(table.Headers) == 0 {
		return nil, &parsererror.NormalizationError{Reason: "statement has no header row"}
	}

	dateIdx := findColumn(table.Headers, dateAliases)
	descIdx := findColumn(table.Headers, descriptionAliases)
	amountIdx := findColumn(table.Headers, amountAliases)

	positional := positionalCandidates(table.Headers)
	if dateIdx < 0 {
		dateIdx = positionalAt(positional, 0)
	}
	if descIdx < 0 {
		descIdx = positionalAt(positional, 1)
	}
	if amountIdx < 0 {
		amountIdx = positionalAt(positional, 2)
	}
	if dateIdx < 0 || descIdx < 0 || amountIdx < 0 {
		return nil, &parsererror.NormalizationError{
			Reason: "statement has fewer than three usable columns",
		}
	}

	log.WithFields(
		logging.Field{Key: "data", Value: table.Headers[dateIdx]},
		logging.Field{Key: "descricao", Value: table.Headers[descIdx]},
		logging.Field{Key: "valor", Value: table.Headers[amountIdx]},
	).Debug("Resolved statement columns")

	transactions := make([]models.Transaction, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw := cellAt(row, descIdx)
		transactions = append(transactions, models.Transaction{
			Date:           cellAt(row, dateIdx),
			RawDescription: raw,
			Description:    textutils.CleanDescription(raw),
			Amount:         currencyutils.ParseMonetaryValue(cellAt(row, amountIdx)),
		})
	}
	return transactions, nil
}

// findColumn returns the index of the first header matching any alias, or -1.
func findColumn(headers []string, aliases []string) int {
	for _, alias := range aliases {
		for i, header := range headers {
			if strings.EqualFold(strings.TrimSpace(header), alias) {
				return i
			}
		}
	}
	return -1
}

// positionalCandidates returns the header indices eligible for positional
// fallback, in order, with identifier-like columns removed.
func positionalCandidates(headers []string) []int {
	candidates := make([]int, 0, len(headers))
	for i, header := range headers {
		if isIdentifierColumn(header) {
			log.WithField(logging.FieldColumn, header).Debug("Dropping identifier column")
			continue
		}
		candidates = append(candidates, i)
	}
	return candidates
}

func positionalAt(candidates []int, position int) int {
	if position >= len(candidates) {
		return -1
	}
	return candidates[position]
}

func isIdentifierColumn(header string) bool {
	name := strings.ToLower(strings.TrimSpace(header))
	for _, alias := range idAliases {
		if name == alias {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
