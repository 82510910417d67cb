// Package categorizer assigns spending categories to normalized transactions
// through a layered strategy pipeline: persistent cache, batched LLM
// inference, and ordered regex rules as the deterministic fallback.
package categorizer

import (
	"regexp"
	"strings"

	"rmoreira/extrato-csv/internal/models"
)

// Rule pairs a compiled pattern with the category it assigns.
type Rule struct {
	Pattern  *regexp.Regexp
	Category string
}

// defaultRules is the ordered rule list. Order is load-bearing: the first
// matching rule wins, so more specific merchant patterns must come before
// the generic ones, and the result for a given description never changes
// between runs.
var defaultRules = []Rule{
	{regexp.MustCompile(`mercado|supermerc|hiper|carrefour|pao de acucar|assai`), models.CategoryMercado},
	{regexp.MustCompile(`restaurante|pizza|lanchonete|ifood|ubereats`), models.CategoryAlimentacao},
	{regexp.MustCompile(`aluguel|condominio|iptu|imobiliaria`), models.CategoryMoradia},
	{regexp.MustCompile(`energia|luz|copel|enel|eletrobras|cemig`), models.CategoryMoradia},
	{regexp.MustCompile(`agua|sanepar|sabesp|corsan`), models.CategoryMoradia},
	{regexp.MustCompile(`internet|vivo|claro|tim|oi|net`), models.CategoryServicos},
	{regexp.MustCompile(`uber|99|transporte|onibus|metrô|metro|estacionamento|combustivel|posto`), models.CategoryTransporte},
	{regexp.MustCompile(`farmacia|drogaria|droga|saude|consulta|seguro saude`), models.CategorySaude},
	{regexp.MustCompile(`netflix|spotify|disney|hbo|prime video`), models.CategoryStreaming},
	{regexp.MustCompile(`salario|provento|pagto|pagamento|creditos`), models.CategoryRenda},
	{regexp.MustCompile(`pix|ted|doc|transferencia`), models.CategoryTransferencias},
	{regexp.MustCompile(`educacao|curso|faculdade|escola`), models.CategoryEducacao},
	{regexp.MustCompile(`invest|tesouro|cdb|fundo|bolsa|corretora|clear|xp|rico`), models.CategoryInvestimentos},
}

// RegexCategorizer maps descriptions to categories by ordered pattern match.
type RegexCategorizer struct {
	rules []Rule
}

// NewRegexCategorizer returns a categorizer over the default rule set.
func NewRegexCategorizer() *RegexCategorizer {
	return &RegexCategorizer{rules: defaultRules}
}

// NewRegexCategorizerWithRules returns a categorizer over a custom rule set.
func NewRegexCategorizerWithRules(rules []Rule) *RegexCategorizer {
	return &RegexCategorizer{rules: rules}
}

// Categorize returns the category of the first rule matching the lowercased
// description, or the default category when no rule matches.
func (c *RegexCategorizer) Categorize(description string) string {
	text := strings.ToLower(description)
	for _, rule := range c.rules {
		if rule.Pattern.MatchString(text) {
			return rule.Category
		}
	}
	return models.CategoryDefault
}
