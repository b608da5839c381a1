package voiceorder

import (
	"strings"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

// extractSpecialRequests captures the clause following each politeness or
// request marker, up to the next sentence terminator or marker. A marker
// that closes its clause ("zwei kafi bitte") is recorded as itself.
// Identical requests are kept once.
func extractSpecialRequests(t *lexicon.Table, tokens []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for i := 0; i < len(tokens); {
		n := t.MarkerAt(tokens, i)
		if n == 0 {
			i++
			continue
		}
		start := i + n
		end := start
		for end < len(tokens) && !isTerminator(tokens[end]) && t.MarkerAt(tokens, end) == 0 {
			end++
		}
		text := joinTokens(tokens[start:end])
		if text == "" {
			text = strings.Join(tokens[i:start], " ")
		}
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
		i = end
	}
	return out
}
