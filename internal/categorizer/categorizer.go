package categorizer

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Options selects the categorization strategy for one run.
type Options struct {
	// Method is MethodRegex or MethodLLM.
	Method string

	// BlockSize is the LLM batch size; zero means DefaultBlockSize.
	BlockSize int

	// LLMEnhanced enables the optional refinement pass after regex
	// categorization. It has no effect in LLM mode, where answers already
	// came from the model.
	LLMEnhanced bool
}

// Categorizer assigns a category to every transaction of a ledger. Income
// rows always get the fixed income label; expense rows go through the cache,
// then the configured strategy. Every transaction ends up categorized no
// matter which strategies fail.
type Categorizer struct {
	regex *RegexCategorizer
	llm   LLMClient
	store *store.CacheStore
}

// New builds an orchestrator. llm may be nil when only the regex method is
// used; cacheStore must not be nil.
func New(llm LLMClient, cacheStore *store.CacheStore) *Categorizer {
	return &Categorizer{
		regex: NewRegexCategorizer(),
		llm:   llm,
		store: cacheStore,
	}
}

// Categorize labels every transaction in place, preserving input order, and
// returns the ledger together with the per-category totals. The returned
// error is non-nil only for cache I/O faults; strategy failures degrade
// silently to regex.
func (c *Categorizer) Categorize(ctx context.Context, transactions []models.Transaction, opts Options) ([]models.Transaction, []models.CategoryTotal, error) {
	if len(transactions) == 0 {
		return transactions, []models.CategoryTotal{}, nil
	}

	cache, err := c.store.Load()
	if err != nil {
		return nil, nil, err
	}

	if opts.Method == models.MethodLLM && c.llm != nil {
		if err := c.categorizeWithLLM(ctx, transactions, cache, opts.BlockSize); err != nil {
			return nil, nil, err
		}
	}

	// Resolve every expense: cache first, regex as the terminal fallback.
	// In LLM mode the cache now holds an entry for every expense, so regex
	// only fires here in regex mode or for blank descriptions.
	cacheHits := 0
	for i := range transactions {
		if !transactions[i].IsExpense() {
			transactions[i].Category = models.CategoryRenda
			continue
		}
		// A cached default label is not authoritative; recompute it.
		if category, ok := cache[transactions[i].Description]; ok && category != "" && category != models.CategoryDefault {
			transactions[i].Category = category
			cacheHits++
			continue
		}
		transactions[i].Category = c.regex.Categorize(transactions[i].Description)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldMethod, Value: opts.Method},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "cache_hits", Value: cacheHits},
	).Info("Categorization complete")

	if opts.LLMEnhanced && opts.Method == models.MethodRegex && c.llm != nil {
		transactions = RefineCategories(ctx, c.llm, transactions)
	}

	return transactions, Totals(transactions), nil
}

// categorizeWithLLM feeds the cache-missing expense descriptions through the
// batch categorizer. A cached default label counts as a miss: the entry only
// exists because no strategy resolved it before, so it stays eligible for a
// better answer.
func (c *Categorizer) categorizeWithLLM(ctx context.Context, transactions []models.Transaction, cache map[string]string, blockSize int) error {
	seen := make(map[string]bool)
	var unresolved []string
	for _, tx := range transactions {
		if !tx.IsExpense() || tx.Description == "" || seen[tx.Description] {
			continue
		}
		seen[tx.Description] = true
		if category, ok := cache[tx.Description]; ok && category != models.CategoryDefault {
			continue
		}
		unresolved = append(unresolved, tx.Description)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(unresolved)},
		logging.Field{Key: "cached", Value: len(seen) - len(unresolved)},
	).Info("Resolving descriptions through LLM")

	if len(unresolved) == 0 {
		return nil
	}
	batch := NewBatchCategorizer(c.llm, c.regex, c.store, blockSize)
	return batch.CategorizeAll(ctx, unresolved, cache)
}

// Totals aggregates signed amounts per category. Expense categories are
// ordered by total ascending (largest spend first, since expenses are
// negative) with the category label as tie-breaker; the income total is
// always the last row.
func Totals(transactions []models.Transaction) []models.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	income := decimal.Zero
	hasIncome := false
	for _, tx := range transactions {
		if tx.IsExpense() {
			sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		} else {
			income = income.Add(tx.Amount)
			hasIncome = true
		}
	}

	totals := make([]models.CategoryTotal, 0, len(sums)+1)
	for category, sum := range sums {
		totals = append(totals, models.CategoryTotal{Categoria: category, Valor: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Valor.Equal(totals[j].Valor) {
			return totals[i].Valor.LessThan(totals[j].Valor)
		}
		return totals[i].Categoria < totals[j].Categoria
	})

	if hasIncome {
		totals = append(totals, models.CategoryTotal{Categoria: models.CategoryRenda, Valor: income})
	}
	return totals
}
