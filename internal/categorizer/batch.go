package categorizer

import (
	"context"

	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/store"
)

// DefaultBlockSize is the number of descriptions sent per LLM request.
const DefaultBlockSize = 10

// BatchCategorizer resolves descriptions through the LLM in fixed-size blocks,
// folding every result into the shared cache. A block that fails, entirely or
// partially, degrades to the regex strategy for its unresolved descriptions,
// so the batch as a whole always resolves every input.
type BatchCategorizer struct {
	client    LLMClient
	regex     *RegexCategorizer
	store     *store.CacheStore
	blockSize int
}

// NewBatchCategorizer wires a batch run over the given client and cache store.
func NewBatchCategorizer(client LLMClient, regex *RegexCategorizer, cacheStore *store.CacheStore, blockSize int) *BatchCategorizer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &BatchCategorizer{
		client:    client,
		regex:     regex,
		store:     cacheStore,
		blockSize: blockSize,
	}
}

// CategorizeAll resolves every description in order, mutating cache in place.
// The cache is persisted after each block so an interrupted run keeps the
// blocks it already paid for. Only cache persistence faults abort the run;
// LLM faults never do.
func (b *BatchCategorizer) CategorizeAll(ctx context.Context, descriptions []string, cache map[string]string) error {
	for start := 0; start < len(descriptions); start += b.blockSize {
		end := start + b.blockSize
		if end > len(descriptions) {
			end = len(descriptions)
		}
		block := descriptions[start:end]

		log.WithFields(
			logging.Field{Key: logging.FieldBlock, Value: start / b.blockSize},
			logging.Field{Key: logging.FieldCount, Value: len(block)},
		).Debug("Categorizing block")

		b.categorizeBlock(ctx, block, cache)

		if err := b.store.Save(cache); err != nil {
			return err
		}
	}
	return nil
}

func (b *BatchCategorizer) categorizeBlock(ctx context.Context, block []string, cache map[string]string) {
	response, err := b.client.Generate(ctx, BuildCategorizationPrompt(block))
	if err != nil {
		log.WithError(err).Warn("LLM request failed, falling back to regex for block")
		for _, description := range block {
			b.fallback(description, cache)
		}
		return
	}

	for _, assignment := range ParseCategorizationResponse(response, block) {
		if current, ok := cache[assignment.Description]; !ok || current == models.CategoryDefault {
			cache[assignment.Description] = assignment.Category
		}
	}

	// Descriptions the response skipped or the parser could not match.
	for _, description := range block {
		if _, ok := cache[description]; !ok {
			b.fallback(description, cache)
		}
	}
}

func (b *BatchCategorizer) fallback(description string, cache map[string]string) {
	category := b.regex.Categorize(description)
	log.WithFields(
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Regex fallback")
	cache[description] = category
}
