package index

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// highlight markers wrapped around matched terms in snippets.
const (
	markOpen  = "«"
	markClose = "»"
)

// caseFolded pairs a per-rune lowercase view of a string with a mapping
// from every folded byte offset back to the originating byte offset. Some
// runes change byte length when lowered (İ U+0130 folds to a 1-byte i), so
// offsets found in the folded view must never be applied to the source
// directly.
type caseFolded struct {
	lower string
	orig  []int // len(lower)+1 entries; orig[len(lower)] == len(source)
}

func foldCase(s string) caseFolded {
	var b strings.Builder
	b.Grow(len(s))
	orig := make([]int, 0, len(s)+1)
	for i, r := range s {
		folded := unicode.ToLower(r)
		for n := utf8.RuneLen(folded); n > 0; n-- {
			orig = append(orig, i)
		}
		b.WriteRune(folded)
	}
	orig = append(orig, len(s))
	return caseFolded{lower: b.String(), orig: orig}
}

// buildSnippet extracts a window of the body around the first query-term
// match and wraps term occurrences inside the window with highlight marks.
// With no terms (filter-only queries) it returns the truncated body head.
func buildSnippet(body string, terms []string, maxRunes int) string {
	runes := []rune(body)
	folded := foldCase(body)

	first := -1
	for _, t := range terms {
		if idx := strings.Index(folded.lower, t); idx >= 0 {
			pos := utf8.RuneCountInString(body[:folded.orig[idx]])
			if first < 0 || pos < first {
				first = pos
			}
		}
	}

	start := 0
	if first > maxRunes/4 {
		start = first - maxRunes/4
	}
	end := start + maxRunes
	truncatedTail := end < len(runes)
	if !truncatedTail {
		end = len(runes)
	}

	window := string(runes[start:end])
	if len(terms) > 0 {
		window = highlightTerms(window, terms)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	b.WriteString(window)
	if truncatedTail {
		b.WriteString("…")
	}
	return b.String()
}

// highlightTerms wraps each case-insensitive term occurrence with marks.
// Longer terms are applied first so a CJK run is not broken by its bigrams.
func highlightTerms(window string, terms []string) string {
	ordered := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		if t != "" && !seen[t] {
			seen[t] = true
			ordered = append(ordered, t)
		}
	}
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if len(ordered[j]) > len(ordered[i]) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	for _, t := range ordered {
		window = wrapOccurrences(window, t)
	}
	return window
}

// wrapOccurrences marks every occurrence of term in s, matching against the
// folded view and slicing the original only at mapped rune boundaries.
func wrapOccurrences(s, term string) string {
	folded := foldCase(s)
	var b strings.Builder
	done := 0   // bytes of s already written out
	lowPos := 0 // scan position in the folded view
	for {
		rel := strings.Index(folded.lower[lowPos:], term)
		if rel < 0 {
			b.WriteString(s[done:])
			return b.String()
		}
		start := folded.orig[lowPos+rel]
		end := folded.orig[lowPos+rel+len(term)]
		// Skip occurrences already inside a highlight.
		if inMark(s, start) {
			b.WriteString(s[done:end])
		} else {
			b.WriteString(s[done:start])
			b.WriteString(markOpen)
			b.WriteString(s[start:end])
			b.WriteString(markClose)
		}
		done = end
		lowPos += rel + len(term)
	}
}

// inMark reports whether position idx sits inside an existing «...» span.
func inMark(s string, idx int) bool {
	open := strings.LastIndex(s[:idx], markOpen)
	if open < 0 {
		return false
	}
	return strings.LastIndex(s[:idx], markClose) < open
}
