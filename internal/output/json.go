package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// jsonWriter buffers records and flushes them as one JSON document. A single
// record is emitted bare, several as an array.
type jsonWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	recs   []Record
}

func newJSONWriter(w io.Writer, pretty bool, indent string) *jsonWriter {
	return &jsonWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

func (w *jsonWriter) Write(rec Record) error {
	w.recs = append(w.recs, rec)
	return nil
}

func (w *jsonWriter) Flush() error {
	var doc any = w.recs
	if len(w.recs) == 1 {
		doc = w.recs[0]
	}

	var out []byte
	var err error
	if w.pretty {
		out, err = json.MarshalIndent(doc, "", w.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// jsonlWriter emits newline-delimited JSON, one record per line, as soon as
// each record arrives.
type jsonlWriter struct {
	w *bufio.Writer
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	return &jsonlWriter{w: bufio.NewWriter(w)}
}

func (w *jsonlWriter) Write(rec Record) error {
	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}
