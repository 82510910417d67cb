package common

import (
	"context"
	"time"

	"rmoreira/extrato-csv/internal/categorizer"
	"rmoreira/extrato-csv/internal/config"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/normalizer"
	"rmoreira/extrato-csv/internal/reader"
	"rmoreira/extrato-csv/internal/store"
)

// ProcessStatement runs the full pipeline over one statement file: read,
// normalize, categorize, aggregate. Structural failures (unreadable file,
// unusable schema, cache I/O faults) return an error; categorization strategy
// failures never do, they degrade inside the categorizer.
func ProcessStatement(ctx context.Context, filePath string, cfg *config.Config) (models.Summary, error) {
	table, err := reader.ReadStatement(filePath, reader.Options{
		Delimiter: []rune(cfg.CSV.Delimiter)[0],
	})
	if err != nil {
		return models.Summary{}, err
	}

	transactions, err := normalizer.Normalize(table)
	if err != nil {
		return models.Summary{}, err
	}

	var llm categorizer.LLMClient
	if cfg.Categorization.Method == models.MethodLLM || cfg.Categorization.LLMEnhanced {
		client := categorizer.NewGeminiClient(
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		)
		defer func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close LLM client")
			}
		}()
		llm = client
	}

	cat := categorizer.New(llm, store.NewCacheStore(cfg.Categorization.CachePath))
	transactions, totals, err := cat.Categorize(ctx, transactions, categorizer.Options{
		Method:      cfg.Categorization.Method,
		BlockSize:   cfg.Categorization.BlockSize,
		LLMEnhanced: cfg.Categorization.LLMEnhanced,
	})
	if err != nil {
		return models.Summary{}, err
	}

	return BuildSummary(transactions, totals, cfg.Categorization.Method), nil
}

// BuildSummary assembles the run payload from a categorized ledger.
func BuildSummary(transactions []models.Transaction, totals []models.CategoryTotal, method string) models.Summary {
	expenses := 0
	for _, tx := range transactions {
		if tx.IsExpense() {
			expenses++
		}
	}
	return models.Summary{
		Ok:                 true,
		Timestamp:          models.NowISO(),
		Method:             method,
		NTransacoes:        len(transactions),
		NDespesas:          expenses,
		NReceitas:          len(transactions) - expenses,
		TotaisPorCategoria: totals,
		Transacoes:         transactions,
	}
}
