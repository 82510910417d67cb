package categorizer

import (
	"fmt"
	"strings"
)

// categoryHints annotates each prompt category with example merchants. The
// hints anchor the model on Brazilian statement vocabulary.
var categoryHints = []string{
	"Alimentação (restaurantes, delivery, lanches)",
	"Transporte (Uber, combustível, estacionamento)",
	"Saúde (farmácias, consultas médicas)",
	"Mercado (supermercados, compras de alimentos)",
	"Educação (cursos, mensalidades escolares)",
	"Lazer (cinemas, jogos, entretenimento)",
	"Moradia (aluguel, condomínio, energia, água)",
	"Investimentos (CDB, ações, fundos)",
	"Streaming (Netflix, Spotify, Disney+)",
	"Transferências (PIX, TED, DOC)",
	"Renda (salários, freelances, dividendos)",
	"Serviços (internet, telefone, consultoria)",
	"Outros (quando nenhuma outra categoria se aplicar)",
}

// BuildCategorizationPrompt renders the batch prompt for one block of
// canonical descriptions. The response contract is one "description - category"
// line per transaction; ParseCategorizationResponse is the other half of this
// contract.
func BuildCategorizationPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("Categorize cada transação financeira na categoria mais apropriada.\n\n")
	b.WriteString("CATEGORIAS DISPONÍVEIS:\n")
	for _, hint := range categoryHints {
		fmt.Fprintf(&b, "- %s\n", hint)
	}
	b.WriteString("\nFORMATO DE RESPOSTA:\n")
	b.WriteString("Para cada transação, responda EXATAMENTE no formato:\n")
	b.WriteString("[NOME DA TRANSAÇÃO] - [CATEGORIA]\n\n")
	b.WriteString("TRANSAÇÕES PARA CATEGORIZAR:\n")
	for _, description := range descriptions {
		b.WriteString(description)
		b.WriteString("\n")
	}
	b.WriteString("\nEXEMPLOS:\n")
	b.WriteString("UBER TRIP 12345 - Transporte\n")
	b.WriteString("NETFLIX.COM - Streaming\n")
	b.WriteString("SUPERMERCADO EXTRA - Mercado\n")
	b.WriteString("PIX TRANSFERIDO - Transferências\n\n")
	b.WriteString("RESPOSTA:")
	return b.String()
}

// BuildRefinementPrompt renders the whole-ledger refinement prompt. The model
// answers with a single JSON object mapping descriptions to categories.
func BuildRefinementPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("Você é um classificador de gastos. Mapeie cada descrição para UMA categoria entre: ")
	b.WriteString("Alimentação, Moradia, Serviços, Transporte, Saúde, Lazer, Renda, Transferências, Educação, Outros.\n")
	b.WriteString(`Responda em JSON no formato {"mappings": [{"descricao": "...", "categoria": "..."}]} sem comentários.`)
	b.WriteString("\n\nDescrições:\n")
	for _, description := range descriptions {
		fmt.Fprintf(&b, "- %s\n", description)
	}
	return strings.TrimRight(b.String(), "\n")
}
