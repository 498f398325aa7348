package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPayload marks a response that is not a JSON object.
	ErrInvalidPayload = errors.New("response is not a valid JSON object")

	// ErrMissingField marks a JSON object without the mandatory field.
	ErrMissingField = errors.New("missing required field")
)

// parseQuote validates a raw model response and builds the quote record.
// Optional-field defects (confidence, warnings, line items) are repaired in
// place rather than failing the extraction; only "descricao" is mandatory.
func parseQuote(raw string) (*Quote, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	descricao, _ := m["descricao"].(string)
	descricao = strings.TrimSpace(descricao)
	if descricao == "" {
		return nil, fmt.Errorf("%w: descricao", ErrMissingField)
	}

	q := &Quote{
		Descricao:  descricao,
		Confidence: 0.5,
	}

	if c, ok := m["confidence"].(float64); ok {
		q.Confidence = clamp(c, 0, 1)
	}

	if ws, ok := m["warnings"].([]any); ok {
		for _, w := range ws {
			if s, ok := w.(string); ok {
				q.Warnings = append(q.Warnings, s)
			}
		}
	}

	if items, ok := m["line_items"].([]any); ok {
		for _, raw := range items {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if item, ok := parseLineItem(entry); ok {
				q.LineItems = append(q.LineItems, item)
			}
		}
	}

	return q, nil
}

// parseLineItem keeps only well-formed rows: string descricao, quant and
// preco_unit. Malformed rows are dropped, not repaired. Medida is retained
// only as a non-empty string.
func parseLineItem(m map[string]any) (LineItem, bool) {
	descricao, ok1 := m["descricao"].(string)
	quant, ok2 := m["quant"].(string)
	precoUnit, ok3 := m["preco_unit"].(string)
	if !ok1 || !ok2 || !ok3 {
		return LineItem{}, false
	}

	item := LineItem{
		Descricao: descricao,
		Quant:     quant,
		PrecoUnit: precoUnit,
	}
	if medida, ok := m["medida"].(string); ok && strings.TrimSpace(medida) != "" {
		item.Medida = medida
	}
	return item, true
}

// stripCodeFence removes a single enclosing fenced block (e.g. one tagged
// "json") that models like to wrap their output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	rest := s[len("```"):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return s
	}
	rest = rest[nl+1:] // drop the opening fence and its language tag

	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
