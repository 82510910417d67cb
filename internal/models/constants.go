package models

// Category labels form a fixed, closed set. The orchestrator never emits a
// label outside this set: LLM answers are accepted only when they match one of
// these, and everything else collapses to CategoryDefault.
const (
	CategoryMercado        = "Mercado"
	CategoryAlimentacao    = "Alimentação"
	CategoryMoradia        = "Moradia"
	CategoryServicos       = "Serviços"
	CategoryTransporte     = "Transporte"
	CategorySaude          = "Saúde"
	CategoryStreaming      = "Streaming"
	CategoryTransferencias = "Transferências"
	CategoryEducacao       = "Educação"
	CategoryInvestimentos  = "Investimentos"
	CategoryLazer          = "Lazer"

	// CategoryRenda is the fixed label for the income partition.
	CategoryRenda = "Renda"

	// CategoryDefault marks a transaction no strategy could resolve. A cache
	// entry holding this value is treated as unresolved and is eligible for
	// re-categorization on a later run.
	CategoryDefault = "Outros"
)

// ExpenseCategories lists the labels the LLM may assign to an expense, in the
// order they are presented in the categorization prompt.
var ExpenseCategories = []string{
	CategoryAlimentacao,
	CategoryTransporte,
	CategorySaude,
	CategoryMercado,
	CategoryEducacao,
	CategoryLazer,
	CategoryMoradia,
	CategoryInvestimentos,
	CategoryStreaming,
	CategoryTransferencias,
	CategoryRenda,
	CategoryServicos,
	CategoryDefault,
}

// Categorization methods accepted by the pipeline options.
const (
	MethodRegex = "regex"
	MethodLLM   = "llm"
)
