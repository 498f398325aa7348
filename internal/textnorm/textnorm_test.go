package textnorm

import "testing"

func TestNormalize_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"blank lines only", "\n\n\n"},
		{"mixed whitespace", " \t \n  \r\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != "" {
				t.Errorf("Normalize(%q) = %q, want empty string", tt.input, got)
			}
		})
	}
}

func TestNormalize_LineEndings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\n\r\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_CollapsesBlankRuns(t *testing.T) {
	got := Normalize("linha1\n\n\n\nlinha2")
	want := "linha1\n\nlinha2"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_SoftHyphenation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"split word rejoined",
			"plas-\ntificação couché",
			"plastificação couché",
		},
		{
			"chained hyphenation",
			"im-\nper-\nmeável",
			"impermeável",
		},
		{
			"hyphen before blank line kept",
			"lista -\n\nOutro parágrafo",
			"lista -\n\nOutro parágrafo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_JoinsWrappedSentences(t *testing.T) {
	got := Normalize("Este produto é fabricado em\nplástico rígido de alta densidade.")
	want := "Este produto é fabricado em plástico rígido de alta densidade."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_JoinsMultipleLinesInOnePass(t *testing.T) {
	got := Normalize("A caixa inclui janela,\ncantos reforçados e\nacabamento mate.")
	want := "A caixa inclui janela, cantos reforçados e acabamento mate."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_SentencePunctuationBlocksJoin(t *testing.T) {
	input := "Entrega prevista: 10 dias.\nContacto: geral@empresa.pt"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_ColonBlocksJoin(t *testing.T) {
	// A line ending in ":" is a label, even before a lowercase line.
	input := "Descrição:\ncaixa individual com janela"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_UppercaseStartBlocksJoin(t *testing.T) {
	input := "produto em cartão\nPreço sob consulta"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_BlankLineBlocksJoin(t *testing.T) {
	input := "primeira frase em\n\nsegunda frase"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_DigitEndingBlocksJoin(t *testing.T) {
	// Only lines ending in a letter or comma are considered mid-sentence.
	input := "quantidade: 500\nunidades por caixa"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_AccentedCapitalsBlockJoin(t *testing.T) {
	input := "referência anterior em\nÉpoca de produção distinta"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"",
		"   ",
		"a\r\nb",
		"Este produto é fabricado em\nplástico rígido de alta densidade.",
		"Entrega prevista: 10 dias.\nContacto: geral@empresa.pt",
		"Descrição:\ncaixa individual com janela",
		"plas-\ntificação couché",
		"linha1\n\n\n\nlinha2",
		"A caixa inclui janela,\ncantos reforçados e\nacabamento mate.",
		"Orçamento nº 42\n\nCaixa 300x200x100\nem cartão canelado,\nimpressão a 2 cores.\n\nTotal: 1.250,00 €",
	}

	for _, sample := range samples {
		once := Normalize(sample)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", sample, once, twice)
		}
	}
}
