package categorizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/store"
)

// mockLLM replays canned responses in order and records every prompt.
type mockLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.prompts) > len(m.responses) {
		return "", nil
	}
	return m.responses[len(m.prompts)-1], nil
}

func newTestStore(t *testing.T) *store.CacheStore {
	t.Helper()
	return store.NewCacheStore(filepath.Join(t.TempDir(), "cache.yaml"))
}

func expense(date, description string, amount float64) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
	}
}

func TestCategorizeRegexMethod(t *testing.T) {
	c := New(nil, newTestStore(t))
	txs := []models.Transaction{
		expense("01/01/2024", "UBER TRIP 123 - corp", -45.90),
		expense("02/01/2024", "SALARIO ACME", 3200),
		expense("03/01/2024", "ZZZ XYZW", -10),
	}

	categorized, totals, err := c.Categorize(context.Background(), txs, Options{Method: models.MethodRegex})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryTransporte, categorized[0].Category)
	assert.Equal(t, models.CategoryRenda, categorized[1].Category)
	assert.Equal(t, models.CategoryDefault, categorized[2].Category)

	// Income is always the last totals row.
	require.NotEmpty(t, totals)
	assert.Equal(t, models.CategoryRenda, totals[len(totals)-1].Categoria)
	assert.True(t, decimal.NewFromFloat(3200).Equal(totals[len(totals)-1].Valor))
}

func TestCategorizeEveryTransactionGetsACategory(t *testing.T) {
	c := New(&mockLLM{err: errors.New("model offline")}, newTestStore(t))
	txs := []models.Transaction{
		expense("01/01/2024", "UBER TRIP", -10),
		expense("01/01/2024", "COISA QUALQUER", -5),
		expense("01/01/2024", "SALARIO", 100),
	}

	categorized, _, err := c.Categorize(context.Background(), txs, Options{Method: models.MethodLLM})
	require.NoError(t, err)
	for _, tx := range categorized {
		assert.NotEmpty(t, tx.Category, "description %q", tx.Description)
	}
}

func TestCategorizeTotalLLMFailureEqualsRegexOutput(t *testing.T) {
	txs := func() []models.Transaction {
		return []models.Transaction{
			expense("01/01/2024", "UBER TRIP", -10),
			expense("02/01/2024", "FARMACIA SAO JOAO", -23.50),
			expense("03/01/2024", "ZZZ XYZW", -5),
		}
	}

	regexOut, _, err := New(nil, newTestStore(t)).Categorize(context.Background(), txs(), Options{Method: models.MethodRegex})
	require.NoError(t, err)

	llmOut, _, err := New(&mockLLM{err: errors.New("down")}, newTestStore(t)).Categorize(context.Background(), txs(), Options{Method: models.MethodLLM})
	require.NoError(t, err)

	for i := range regexOut {
		assert.Equal(t, regexOut[i].Category, llmOut[i].Category)
	}
}

func TestCategorizeIncomePartition(t *testing.T) {
	c := New(nil, newTestStore(t))
	txs := []models.Transaction{
		expense("01/01/2024", "SALARIO", 100),
		expense("01/01/2024", "ESTORNO", 0), // zero is income
		expense("01/01/2024", "UBER", -1),
	}

	categorized, _, err := c.Categorize(context.Background(), txs, Options{Method: models.MethodRegex})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryRenda, categorized[0].Category)
	assert.Equal(t, models.CategoryRenda, categorized[1].Category)
	assert.NotEqual(t, models.CategoryRenda, categorized[2].Category)
}

func TestCategorizeLLMMethodUsesModelAnswers(t *testing.T) {
	llm := &mockLLM{responses: []string{"NETFLIX.COM - Streaming\nPADOCA DO ZE - Alimentação"}}
	cacheStore := newTestStore(t)
	c := New(llm, cacheStore)
	txs := []models.Transaction{
		expense("01/01/2024", "NETFLIX.COM", -39.90),
		expense("02/01/2024", "PADOCA DO ZE", -15),
	}

	categorized, _, err := c.Categorize(context.Background(), txs, Options{Method: models.MethodLLM})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryStreaming, categorized[0].Category)
	assert.Equal(t, models.CategoryAlimentacao, categorized[1].Category)

	// The answers were persisted for the next run.
	cache, err := cacheStore.Load()
	require.NoError(t, err)
	assert.Equal(t, models.CategoryStreaming, cache["NETFLIX.COM"])
}

func TestCategorizeSecondRunHitsCache(t *testing.T) {
	cacheStore := newTestStore(t)
	llm := &mockLLM{responses: []string{"NETFLIX.COM - Streaming"}}
	txs := func() []models.Transaction {
		return []models.Transaction{expense("01/01/2024", "NETFLIX.COM", -39.90)}
	}

	first, _, err := New(llm, cacheStore).Categorize(context.Background(), txs(), Options{Method: models.MethodLLM})
	require.NoError(t, err)
	require.Equal(t, 1, len(llm.prompts))

	second, _, err := New(llm, cacheStore).Categorize(context.Background(), txs(), Options{Method: models.MethodLLM})
	require.NoError(t, err)

	// No new LLM traffic, identical output: re-runs are idempotent.
	assert.Equal(t, 1, len(llm.prompts))
	assert.Equal(t, first[0].Category, second[0].Category)
}

func TestCategorizeCachedDefaultIsRetried(t *testing.T) {
	cacheStore := newTestStore(t)
	require.NoError(t, cacheStore.Save(map[string]string{"PADOCA DO ZE": models.CategoryDefault}))

	llm := &mockLLM{responses: []string{"PADOCA DO ZE - Alimentação"}}
	txs := []models.Transaction{expense("01/01/2024", "PADOCA DO ZE", -15)}

	categorized, _, err := New(llm, cacheStore).Categorize(context.Background(), txs, Options{Method: models.MethodLLM})
	require.NoError(t, err)
	assert.Equal(t, 1, len(llm.prompts))
	assert.Equal(t, models.CategoryAlimentacao, categorized[0].Category)
}

func TestCategorizeLLMEnhancedRefinesRegexMode(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`{"mappings": [{"descricao": "netflix.com", "categoria": "Lazer"}]}`,
	}}
	txs := []models.Transaction{expense("01/01/2024", "NETFLIX.COM", -39.90)}

	categorized, _, err := New(llm, newTestStore(t)).Categorize(context.Background(), txs, Options{
		Method:      models.MethodRegex,
		LLMEnhanced: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, len(llm.prompts))
	assert.Contains(t, llm.prompts[0], `"mappings"`)
	assert.Equal(t, models.CategoryLazer, categorized[0].Category)
}

func TestCategorizeLLMEnhancedIgnoredInLLMMode(t *testing.T) {
	llm := &mockLLM{responses: []string{"NETFLIX.COM - Streaming"}}
	txs := []models.Transaction{expense("01/01/2024", "NETFLIX.COM", -39.90)}

	categorized, _, err := New(llm, newTestStore(t)).Categorize(context.Background(), txs, Options{
		Method:      models.MethodLLM,
		LLMEnhanced: true,
	})
	require.NoError(t, err)
	// Only the batch call, no refinement pass.
	assert.Equal(t, 1, len(llm.prompts))
	assert.Equal(t, models.CategoryStreaming, categorized[0].Category)
}

func TestCategorizePreservesOrder(t *testing.T) {
	c := New(nil, newTestStore(t))
	txs := []models.Transaction{
		expense("03/01/2024", "UBER", -1),
		expense("01/01/2024", "SALARIO", 100),
		expense("02/01/2024", "FARMACIA", -2),
	}

	categorized, _, err := c.Categorize(context.Background(), txs, Options{Method: models.MethodRegex})
	require.NoError(t, err)
	require.Len(t, categorized, 3)
	assert.Equal(t, "UBER", categorized[0].Description)
	assert.Equal(t, "SALARIO", categorized[1].Description)
	assert.Equal(t, "FARMACIA", categorized[2].Description)
}

func TestCategorizeEmptyLedger(t *testing.T) {
	c := New(nil, newTestStore(t))
	categorized, totals, err := c.Categorize(context.Background(), nil, Options{Method: models.MethodRegex})
	require.NoError(t, err)
	assert.Empty(t, categorized)
	assert.Empty(t, totals)
}

func TestBatchCategorizerBlocksAndPersists(t *testing.T) {
	// 25 descriptions with block size 10 means three LLM calls.
	var descriptions []string
	var responses []string
	for i := 0; i < 25; i++ {
		descriptions = append(descriptions, fmt.Sprintf("LOJA %03d", i))
	}
	for block := 0; block < 3; block++ {
		var lines []string
		lo, hi := block*10, (block+1)*10
		if hi > 25 {
			hi = 25
		}
		for i := lo; i < hi; i++ {
			lines = append(lines, fmt.Sprintf("LOJA %03d - Mercado", i))
		}
		responses = append(responses, strings.Join(lines, "\n"))
	}

	llm := &mockLLM{responses: responses}
	cacheStore := newTestStore(t)
	cache := map[string]string{}

	batch := NewBatchCategorizer(llm, NewRegexCategorizer(), cacheStore, 10)
	require.NoError(t, batch.CategorizeAll(context.Background(), descriptions, cache))

	assert.Equal(t, 3, len(llm.prompts))
	assert.Len(t, cache, 25)

	persisted, err := cacheStore.Load()
	require.NoError(t, err)
	assert.Equal(t, cache, persisted)
}

func TestBatchCategorizerPartialResponseFallsBack(t *testing.T) {
	// The model answered only one of two descriptions.
	llm := &mockLLM{responses: []string{"NETFLIX.COM - Streaming"}}
	cache := map[string]string{}

	batch := NewBatchCategorizer(llm, NewRegexCategorizer(), newTestStore(t), 10)
	require.NoError(t, batch.CategorizeAll(context.Background(), []string{"NETFLIX.COM", "UBER TRIP"}, cache))

	assert.Equal(t, models.CategoryStreaming, cache["NETFLIX.COM"])
	assert.Equal(t, models.CategoryTransporte, cache["UBER TRIP"])
}

func TestBatchCategorizerDefaultBlockSize(t *testing.T) {
	batch := NewBatchCategorizer(&mockLLM{}, NewRegexCategorizer(), newTestStore(t), 0)
	assert.Equal(t, DefaultBlockSize, batch.blockSize)
}

func TestTotalsOrdering(t *testing.T) {
	txs := []models.Transaction{
		{Description: "A", Amount: decimal.NewFromFloat(-10), Category: models.CategoryTransporte},
		{Description: "B", Amount: decimal.NewFromFloat(-200), Category: models.CategoryMoradia},
		{Description: "C", Amount: decimal.NewFromFloat(-50), Category: models.CategoryMercado},
		{Description: "D", Amount: decimal.NewFromFloat(3000), Category: models.CategoryRenda},
	}

	totals := Totals(txs)
	require.Len(t, totals, 4)
	assert.Equal(t, models.CategoryMoradia, totals[0].Categoria)
	assert.Equal(t, models.CategoryMercado, totals[1].Categoria)
	assert.Equal(t, models.CategoryTransporte, totals[2].Categoria)
	assert.Equal(t, models.CategoryRenda, totals[3].Categoria)
	assert.True(t, decimal.NewFromFloat(3000).Equal(totals[3].Valor))
}

func TestTotalsSumsPerCategory(t *testing.T) {
	txs := []models.Transaction{
		{Description: "A", Amount: decimal.NewFromFloat(-10), Category: models.CategoryTransporte},
		{Description: "B", Amount: decimal.NewFromFloat(-15), Category: models.CategoryTransporte},
	}

	totals := Totals(txs)
	require.Len(t, totals, 1)
	assert.True(t, decimal.NewFromFloat(-25).Equal(totals[0].Valor))
}

func TestRefineCategoriesOverridesFromJSON(t *testing.T) {
	llm := &mockLLM{responses: []string{
		`Aqui está: {"mappings": [{"descricao": "netflix.com", "categoria": "Lazer"}]}`,
	}}
	txs := []models.Transaction{
		{Description: "NETFLIX.COM", Amount: decimal.NewFromFloat(-39.90), Category: models.CategoryServicos},
		{Description: "SALARIO", Amount: decimal.NewFromFloat(100), Category: models.CategoryRenda},
	}

	refined := RefineCategories(context.Background(), llm, txs)
	assert.Equal(t, models.CategoryLazer, refined[0].Category)
	// Income rows are never refined.
	assert.Equal(t, models.CategoryRenda, refined[1].Category)
}

func TestRefineCategoriesKeepsInputOnBadResponse(t *testing.T) {
	txs := func() []models.Transaction {
		return []models.Transaction{
			{Description: "NETFLIX.COM", Amount: decimal.NewFromFloat(-39.90), Category: models.CategoryServicos},
		}
	}

	refined := RefineCategories(context.Background(), &mockLLM{err: errors.New("down")}, txs())
	assert.Equal(t, models.CategoryServicos, refined[0].Category)

	refined = RefineCategories(context.Background(), &mockLLM{responses: []string{"sem json aqui"}}, txs())
	assert.Equal(t, models.CategoryServicos, refined[0].Category)

	refined = RefineCategories(context.Background(), &mockLLM{responses: []string{`{"mappings": [{"descricao": "netflix.com", "categoria": "Categoria Inventada"}]}`}}, txs())
	assert.Equal(t, models.CategoryServicos, refined[0].Category)
}

func TestBuildCategorizationPromptContract(t *testing.T) {
	prompt := BuildCategorizationPrompt([]string{"UBER TRIP", "NETFLIX.COM"})

	assert.Contains(t, prompt, "UBER TRIP")
	assert.Contains(t, prompt, "NETFLIX.COM")
	assert.Contains(t, prompt, "[NOME DA TRANSAÇÃO] - [CATEGORIA]")
	for _, label := range models.ExpenseCategories {
		assert.Contains(t, prompt, label)
	}
}

func TestBuildRefinementPromptContract(t *testing.T) {
	prompt := BuildRefinementPrompt([]string{"UBER TRIP"})
	assert.Contains(t, prompt, "UBER TRIP")
	assert.Contains(t, prompt, `"mappings"`)
}
