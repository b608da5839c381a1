package voiceorder

import (
	"strconv"
	"strings"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

// candidate is an item together with the token range it was read from.
type candidate struct {
	item       ParsedOrderItem
	start, end int
}

// segment pairs quantities with the item names that follow them. When the
// transcript holds no quantity at all it falls back to the language's
// sentence templates, which yield at most one item of quantity 1.
// Modifier phrases are skipped, so the article in "ohne eine scheibe
// zitrone" is not read as a quantity.
func segment(t *lexicon.Table, tokens []string) []candidate {
	var out []candidate
	sawQuantity := false
	for i := 0; i < len(tokens); {
		if _, n := t.ModificationAt(tokens, i); n > 0 {
			i = spanEnd(t, tokens, i+n, len(tokens))
			continue
		}
		qty, ok := quantityOf(t, tokens[i])
		if !ok {
			i++
			continue
		}
		sawQuantity = true
		end := spanEnd(t, tokens, i+1, len(tokens))
		if end > i+1 {
			out = append(out, newCandidate(t, tokens, qty, i, i+1, end))
		}
		i = end
	}
	if sawQuantity {
		return out
	}
	if c, ok := matchPattern(t, tokens); ok {
		return []candidate{c}
	}
	return nil
}

// quantityOf resolves a positive digit sequence or a number word.
func quantityOf(t *lexicon.Table, tok string) (int, bool) {
	if n, err := strconv.Atoi(tok); err == nil {
		return n, n > 0
	}
	return t.Number(tok)
}

// spanEnd returns the index of the first boundary token in tokens[from:limit],
// or limit.
func spanEnd(t *lexicon.Table, tokens []string, from, limit int) int {
	for j := from; j < limit; j++ {
		if isBoundary(t, tokens, j) {
			return j
		}
	}
	return limit
}

// isBoundary reports whether tokens[i] ends an item name: punctuation, a
// conjunction, a modification keyword or a politeness marker.
func isBoundary(t *lexicon.Table, tokens []string, i int) bool {
	tok := tokens[i]
	if isPunct(tok) || t.IsConjunction(tok) {
		return true
	}
	if _, n := t.ModificationAt(tokens, i); n > 0 {
		return true
	}
	return t.MarkerAt(tokens, i) > 0
}

func newCandidate(t *lexicon.Table, tokens []string, qty, start, nameStart, end int) candidate {
	name, size := extractSize(t, tokens[nameStart:end])
	return candidate{
		item: ParsedOrderItem{
			RawName:   strings.Join(name, " "),
			Quantity:  qty,
			Size:      size,
			Modifiers: []string{},
		},
		start: start,
		end:   end,
	}
}

// matchPattern applies the sentence templates in order to the normalized
// sentence. The first template whose capture still names something after
// truncation at a boundary wins.
func matchPattern(t *lexicon.Table, tokens []string) (candidate, bool) {
	n := len(tokens)
	for n > 0 && isPunct(tokens[n-1]) {
		n--
	}
	if n == 0 {
		return candidate{}, false
	}
	sentence := strings.Join(tokens[:n], " ")

	for _, re := range t.Patterns() {
		loc := re.FindStringSubmatchIndex(sentence)
		if loc == nil || len(loc) < 4 || loc[2] < 0 {
			continue
		}
		// Tokens are joined by single spaces, so the capture's first token
		// index is the number of spaces before it.
		start := strings.Count(sentence[:loc[2]], " ")
		limit := start + len(strings.Fields(sentence[loc[2]:loc[3]]))
		for start < limit && isPunct(tokens[start]) {
			start++
		}
		end := spanEnd(t, tokens, start, limit)
		if end > start {
			return newCandidate(t, tokens, 1, start, start, end), true
		}
	}
	return candidate{}, false
}

// extractSize removes the first size adjective from name, checking the
// size classes in declared order. A name that consists of nothing but the
// adjective is left intact.
func extractSize(t *lexicon.Table, name []string) ([]string, Size) {
	for _, size := range lexicon.SizeClasses {
		for i, w := range name {
			if !t.HasSize(size, w) {
				continue
			}
			if len(name) == 1 {
				return name, size
			}
			rest := make([]string, 0, len(name)-1)
			rest = append(rest, name[:i]...)
			rest = append(rest, name[i+1:]...)
			return rest, size
		}
	}
	return name, ""
}

// ExtractSize strips a size adjective from an item name and reports the
// size class it denoted.
func ExtractSize(name string, lang lexicon.Language) (string, Size, error) {
	t, err := lexicon.Lookup(lang)
	if err != nil {
		return "", "", err
	}
	words, size := extractSize(t, normalizeTokens(t, name))
	return strings.Join(words, " "), size, nil
}
