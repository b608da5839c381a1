package voiceorder

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

// Normalize returns the canonical token form of a transcript: NFC,
// lowercase, punctuation split into standalone tokens, filler words
// removed, dialect spellings collapsed and synonyms replaced by their
// canonical form. Normalizing its own output returns it unchanged.
func Normalize(transcript string, lang lexicon.Language) (string, error) {
	table, err := lexicon.Lookup(lang)
	if err != nil {
		return "", err
	}
	return strings.Join(normalizeTokens(table, transcript), " "), nil
}

// maxPasses bounds the rewrite loop. Real tables settle after two passes.
const maxPasses = 4

// normalizeTokens repeats the rewrite pass until the tokens stop changing.
// A one-word rewrite can start a longer variant ("pop water" becomes "soda
// water", which is itself a variant), so a single pass is not a fixed point.
func normalizeTokens(t *lexicon.Table, transcript string) []string {
	tokens := tokenize(transcript)
	for range maxPasses {
		next := normalizePass(t, tokens)
		if slices.Equal(next, tokens) {
			break
		}
		tokens = next
	}
	return tokens
}

func normalizePass(t *lexicon.Table, raw []string) []string {
	out := make([]string, 0, len(raw))
	for i := 0; i < len(raw); {
		w := raw[i]
		if isPunct(w) {
			out = append(out, w)
			i++
			continue
		}
		if canonical, n := t.RewriteAt(raw, i); n > 0 {
			out = append(out, canonical...)
			i += n
			continue
		}
		i++
		if t.IsFiller(w) {
			continue
		}
		if t.IsLexical(w) || !t.CollapsesVowels() {
			out = append(out, w)
			continue
		}
		out = append(out, collapseWord(t, w)...)
	}
	return out
}

// collapseWord shortens vowel runs of a dialect spelling. Runs are first
// cut to two vowels ("teee" -> "tee") and only cut to one when that does not
// produce a known word.
func collapseWord(t *lexicon.Table, w string) []string {
	for _, keep := range []int{2, 1} {
		c := collapseVowels(w, keep)
		switch {
		case t.IsFiller(c):
			return nil
		case t.IsLexical(c):
			return []string{c}
		}
		if canonical, ok := t.Synonym(c); ok {
			return strings.Fields(canonical)
		}
	}
	return []string{collapseVowels(w, 1)}
}

// tokenize lowercases s and splits it into words and punctuation tokens.
// Apostrophes and hyphens inside a word are kept ("s'il", "o-saft").
func tokenize(s string) []string {
	s = norm.NFC.String(strings.ToLower(s))

	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		if w := strings.Trim(word.String(), "'-"); w != "" {
			tokens = append(tokens, w)
		}
		word.Reset()
	}

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			word.WriteRune(r)
		case r == '\'' || r == '’' || r == '‘' || r == '-':
			if r != '-' {
				r = '\''
			}
			word.WriteRune(r)
		case r == '.' || r == '!' || r == '?' || r == ',':
			flush()
			tokens = append(tokens, string(r))
		case r == ';' || r == ':':
			flush()
			tokens = append(tokens, ",")
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isTerminator(tok string) bool {
	return tok == "." || tok == "!" || tok == "?"
}

func isPunct(tok string) bool {
	return tok == "," || isTerminator(tok)
}

// collapseVowels cuts runs of the same vowel to at most keep runes
// ("drüü" -> "drü" with keep 1).
func collapseVowels(w string, keep int) string {
	var b strings.Builder
	b.Grow(len(w))
	var prev rune
	run := 0
	for _, r := range w {
		if r == prev && isVowel(r) {
			run++
			if run > keep {
				continue
			}
		} else {
			run = 1
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouyäöüéèàò", r)
}

// joinTokens renders tokens as text, attaching punctuation to the word
// before it and dropping punctuation at either end.
func joinTokens(tokens []string) string {
	start, end := 0, len(tokens)
	for start < end && isPunct(tokens[start]) {
		start++
	}
	for end > start && isPunct(tokens[end-1]) {
		end--
	}
	var b strings.Builder
	for i, tok := range tokens[start:end] {
		if i > 0 && !isPunct(tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}
