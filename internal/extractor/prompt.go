package extractor

import (
	"strings"

	"github.com/orcado/orcado/internal/logger"
)

const systemPrompt = `És um assistente de extração de dados para documentos comerciais (orçamentos, propostas, faturas pró-forma).

Regras:
1. Responde apenas com um objeto JSON, sem texto adicional
2. O campo "descricao" é obrigatório: a descrição técnica do artigo orçamentado
3. "confidence" é um número entre 0 e 1 com a tua confiança na extração
4. "warnings" é uma lista de avisos sobre dados ilegíveis ou ambíguos
5. "line_items" é uma lista de linhas da tabela do orçamento, cada uma com
   "descricao", "medida" (opcional), "quant" e "preco_unit"
6. Preserva quantidades, medidas e preços exatamente como aparecem no
   documento, incluindo símbolos de moeda e separadores decimais
7. Não inventes valores que não constam do documento`

// buildUserPrompt embeds the normalized document text in the user message.
func buildUserPrompt(content string, maxBytes int) string {
	var prompt strings.Builder
	prompt.WriteString("Extrai o registo estruturado do seguinte documento.\n\n")
	prompt.WriteString("```\n")
	prompt.WriteString(truncateContent(content, maxBytes))
	prompt.WriteString("\n```\n")
	return prompt.String()
}

// truncateContent limits content size to avoid token limits.
// maxLen of 0 means no limit.
func truncateContent(content string, maxLen int) string {
	if maxLen <= 0 || len(content) <= maxLen {
		return content
	}
	logger.Warn("document truncated due to length",
		"original_bytes", len(content),
		"max_bytes", maxLen)
	return content[:maxLen] + "\n\n[Documento truncado...]"
}
