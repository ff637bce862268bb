package index

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on non-alphanumeric boundaries.
// Contiguous CJK runs are emitted whole as single tokens plus their
// character bigrams, so a compound like "AWS導入支援" matches both the full
// run and its parts. Exact-token matching only; the vendor-domain
// vocabulary is short enough that stemming buys nothing.
func Tokenize(text string) []string {
	var tokens []string
	var latin, cjk []rune

	flushLatin := func() {
		if len(latin) > 0 {
			tokens = append(tokens, string(latin))
			latin = latin[:0]
		}
	}
	flushCJK := func() {
		if len(cjk) > 0 {
			tokens = append(tokens, cjkTokens(cjk)...)
			cjk = cjk[:0]
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case isCJK(r):
			flushLatin()
			cjk = append(cjk, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()

	return tokens
}

// cjkTokens returns the whole run plus its bigrams, deduplicated.
func cjkTokens(run []rune) []string {
	tokens := []string{string(run)}
	if len(run) <= 2 {
		return tokens
	}
	seen := map[string]bool{tokens[0]: true}
	for i := 0; i+1 < len(run); i++ {
		bigram := string(run[i : i+2])
		if !seen[bigram] {
			seen[bigram] = true
			tokens = append(tokens, bigram)
		}
	}
	return tokens
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
