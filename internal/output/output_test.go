package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/orcado/orcado/internal/extractor"
)

func sampleRecord(source string) Record {
	return Record{
		Source: source,
		Quote: &extractor.Quote{
			Descricao:  "Caixa em cartão canelado",
			Confidence: 0.9,
			LineItems: []extractor.LineItem{
				{Descricao: "Caixa 300x200", Quant: "500", PrecoUnit: "1,25 €"},
			},
			ModelUsed: "openai-primary",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "jsonl", "yaml"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestJSONWriter_SingleRecordIsBareObject(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	if err := w.Write(sampleRecord("orcamento.txt")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	var rec Record
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not a bare JSON object: %v\n%s", err, buf.String())
	}
	if rec.Source != "orcamento.txt" || rec.Quote.Descricao != "Caixa em cartão canelado" {
		t.Errorf("round-trip record = %+v", rec)
	}
}

func TestJSONWriter_MultipleRecordsAreArray(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSON, WithPretty(false))
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	for _, src := range []string{"a.txt", "b.txt"} {
		if err := w.Write(sampleRecord(src)); err != nil {
			t.Fatalf("Write(%s) error: %v", src, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	var recs []Record
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(recs) != 2 || recs[1].Source != "b.txt" {
		t.Errorf("records = %+v", recs)
	}
}

func TestJSONLWriter_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	for _, src := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := w.Write(sampleRecord(src)); err != nil {
			t.Fatalf("Write(%s) error: %v", src, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	if err := w.Write(sampleRecord("orcamento.txt")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	var rec Record
	if err := yaml.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if rec.Quote == nil || rec.Quote.ModelUsed != "openai-primary" {
		t.Errorf("round-trip record = %+v", rec)
	}
}

func TestRecord_ErrorRow(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	if err := w.Write(Record{Source: "bad.txt", Error: "all providers are cooling down"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, `"quote"`) {
		t.Errorf("failed record should omit quote: %s", out)
	}
	if !strings.Contains(out, "cooling down") {
		t.Errorf("failed record should carry the error: %s", out)
	}
}
