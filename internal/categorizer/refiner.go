package categorizer

import (
	"context"
	"encoding/json"
	"strings"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/textutils"
)

// Caps on the refinement prompt: descriptions are truncated and the sample is
// bounded so the prompt stays small on large ledgers.
const (
	refineMaxDescriptionLen = 80
	refineMaxDescriptions   = 100
)

type refinementResponse struct {
	Mappings []struct {
		Descricao string `json:"descricao"`
		Categoria string `json:"categoria"`
	} `json:"mappings"`
}

// RefineCategories runs an optional second LLM pass over the already
// categorized ledger, letting the model override individual labels via a JSON
// mapping. It is strictly best-effort: any fault leaves the input categories
// untouched.
func RefineCategories(ctx context.Context, client LLMClient, transactions []models.Transaction) []models.Transaction {
	if client == nil || len(transactions) == 0 {
		return transactions
	}

	descriptions := uniqueDescriptions(transactions)
	if len(descriptions) == 0 {
		return transactions
	}

	raw, err := client.Generate(ctx, BuildRefinementPrompt(descriptions))
	if err != nil {
		log.WithError(err).Warn("Refinement pass failed, keeping existing categories")
		return transactions
	}

	payload, err := textutils.ExtractJSON(raw)
	if err != nil {
		log.WithError(err).Warn("Refinement response carried no JSON, keeping existing categories")
		return transactions
	}

	var parsed refinementResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		log.WithError(err).Warn("Refinement response is not valid JSON, keeping existing categories")
		return transactions
	}

	mapping := make(map[string]string, len(parsed.Mappings))
	for _, m := range parsed.Mappings {
		if category := canonicalCategory(m.Categoria); category != "" {
			mapping[strings.ToLower(m.Descricao)] = category
		}
	}
	if len(mapping) == 0 {
		return transactions
	}

	refined := 0
	for i := range transactions {
		if !transactions[i].IsExpense() {
			continue
		}
		if category, ok := mapping[strings.ToLower(transactions[i].Description)]; ok && category != transactions[i].Category {
			transactions[i].Category = category
			refined++
		}
	}
	log.WithField(logging.FieldCount, refined).Debug("Refined categories")
	return transactions
}

// uniqueDescriptions samples the distinct expense descriptions, truncated and
// capped for prompt size.
func uniqueDescriptions(transactions []models.Transaction) []string {
	seen := make(map[string]bool, len(transactions))
	descriptions := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		description := tx.Description
		if runes := []rune(description); len(runes) > refineMaxDescriptionLen {
			description = string(runes[:refineMaxDescriptionLen])
		}
		if description == "" || seen[description] {
			continue
		}
		seen[description] = true
		descriptions = append(descriptions, description)
		if len(descriptions) == refineMaxDescriptions {
			break
		}
	}
	return descriptions
}
