package models

import "time"

// Summary is the full run payload: counts, per-category totals and the
// categorized ledger. It marshals to the JSON shape consumed by callers.
type Summary struct {
	Ok                 bool            `json:"ok"`
	Timestamp          string          `json:"timestamp"`
	Method             string          `json:"method"`
	NTransacoes        int             `json:"n_transacoes"`
	NDespesas          int             `json:"n_despesas"`
	NReceitas          int             `json:"n_receitas"`
	TotaisPorCategoria []CategoryTotal `json:"totais_por_categoria"`
	Transacoes         []Transaction   `json:"transacoes"`
}

// ErrorSummary is the payload returned on unrecoverable structural failures.
// Callers always receive either a complete Summary or exactly this shape.
type ErrorSummary struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewErrorSummary wraps an error into the structured failure payload.
func NewErrorSummary(err error) ErrorSummary {
	return ErrorSummary{Ok: false, Error: err.Error()}
}

// NowISO returns the current time in ISO-8601, the timestamp format of all
// payloads.
func NowISO() string {
	return time.Now().Format(time.RFC3339)
}
