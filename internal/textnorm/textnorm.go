// Package textnorm repairs line-wrapped document text before extraction.
//
// Text pulled out of commercial documents arrives with hard-wrapped lines,
// soft hyphenation and runs of blank lines. Normalize undoes that damage
// deterministically so the extraction prompt sees whole sentences.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize repairs raw extracted text. It is pure and idempotent.
//
// Rules are applied in order: line endings are unified to "\n", every line
// is trimmed, runs of blank lines collapse to a single blank line, a hyphen
// at the end of a line is removed together with the break (re-joining the
// split word), and lines that end mid-sentence are merged with the lines
// that continue them. The result is trimmed as a whole; empty or
// whitespace-only input yields "".
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	lines = collapseBlankRuns(lines)
	lines = rejoinSoftHyphens(lines)
	lines = joinWrappedLines(lines)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// collapseBlankRuns keeps at most one consecutive blank line, preserving
// paragraph breaks while eliminating excess.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return out
}

// rejoinSoftHyphens deletes a line-final hyphen along with the break,
// re-joining the split word ("plas-" + "tificação" -> "plastificação").
func rejoinSoftHyphens(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		for strings.HasSuffix(cur, "-") && i+1 < len(lines) && lines[i+1] != "" {
			cur = strings.TrimSuffix(cur, "-") + lines[i+1]
			i++
		}
		out = append(out, cur)
	}
	return out
}

// joinWrappedLines greedily merges a line with the lines that continue it,
// allowing multi-line merges in one pass. A merge happens when the current
// line ends mid-sentence and the next line is a continuation.
func joinWrappedLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		cur := lines[i]
		j := i + 1
		for j < len(lines) && endsMidSentence(cur) && continuesSentence(lines[j]) {
			cur = cur + " " + lines[j]
			j++
		}
		out = append(out, cur)
		i = j
	}
	return out
}

// endsMidSentence reports whether a line ends with an alphabetic character
// (accented letters included) or a comma. Lines ending in sentence
// punctuation such as ".", ";", ":", "?" or "!" never qualify; a trailing
// ":" marks a label and blocks joining by design.
func endsMidSentence(line string) bool {
	r, size := utf8.DecodeLastRuneInString(line)
	if size == 0 {
		return false
	}
	return r == ',' || unicode.IsLetter(r)
}

// continuesSentence reports whether a line looks like the continuation of
// the previous one: non-blank and not starting with an uppercase letter.
func continuesSentence(line string) bool {
	if line == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return !unicode.IsUpper(r)
}
