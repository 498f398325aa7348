// Package reader loads decoded document text from local files. HTML files
// are flattened to text with their line structure preserved so the
// normalizer can work on real lines.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadFile returns the text content of path. Files with an .html or .htm
// extension are parsed and flattened; everything else is read verbatim.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := FlattenHTML(string(data))
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return text, nil
	default:
		return string(data), nil
	}
}

// blockTags start a new output line when entered and when left.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "div": true, "dl": true, "dt": true, "dd": true,
	"fieldset": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// cellTags separate sibling cells with spaces inside one table row.
var cellTags = map[string]bool{
	"td": true, "th": true,
}

// FlattenHTML converts an HTML document to plain text. Script, style and
// noscript subtrees are dropped; block elements and <br> become line breaks;
// table cells in a row are joined with spaces.
func FlattenHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	flatten(doc.Find("body"), &b)
	return b.String(), nil
}

func flatten(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			b.WriteString(node.Text())
		case cellTags[name]:
			b.WriteString(" ")
			flatten(node, b)
			b.WriteString(" ")
		case blockTags[name]:
			b.WriteString("\n")
			flatten(node, b)
			b.WriteString("\n")
		default:
			flatten(node, b)
		}
	})
}
