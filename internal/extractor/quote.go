package extractor

// Quote is the structured record extracted from one commercial document.
type Quote struct {
	// Descricao is the technical description of the quoted item; the one
	// mandatory field of an extraction.
	Descricao string `json:"descricao" yaml:"descricao"`

	// Confidence is the model's self-reported confidence, clamped to [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Warnings are model-generated caveats, in generation order.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// LineItems holds the well-formed rows of the quoted table.
	LineItems []LineItem `json:"line_items,omitempty" yaml:"line_items,omitempty"`

	// ModelUsed is the pool identifier of the provider that produced the
	// accepted response.
	ModelUsed string `json:"model_used" yaml:"model_used"`
}

// LineItem is one row of a quoted bill-of-materials table. Quantities and
// prices are kept as literal strings (locale-formatted numerals, currency
// symbols); the pipeline never parses them to numbers.
type LineItem struct {
	Descricao string `json:"descricao" yaml:"descricao"`
	Medida    string `json:"medida,omitempty" yaml:"medida,omitempty"`
	Quant     string `json:"quant" yaml:"quant"`
	PrecoUnit string `json:"preco_unit" yaml:"preco_unit"`
}
