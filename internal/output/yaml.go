package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlWriter buffers records and flushes them as one YAML document.
type yamlWriter struct {
	w    *bufio.Writer
	recs []Record
}

func newYAMLWriter(w io.Writer) *yamlWriter {
	return &yamlWriter{w: bufio.NewWriter(w)}
}

func (w *yamlWriter) Write(rec Record) error {
	w.recs = append(w.recs, rec)
	return nil
}

func (w *yamlWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.recs) == 1 {
		err = encoder.Encode(w.recs[0])
	} else {
		err = encoder.Encode(w.recs)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
