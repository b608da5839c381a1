package lexicon

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Size is one of the three canonical item sizes.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// SizeClasses is the declared iteration order used when an item name
// carries more than one size adjective: the first class with a hit wins.
var SizeClasses = []Size{SizeSmall, SizeMedium, SizeLarge}

// ModificationType classifies an add/remove/substitute instruction.
type ModificationType string

const (
	ModAdd    ModificationType = "add"
	ModRemove ModificationType = "remove"
	ModChange ModificationType = "change"
)

// ModificationTypes is the declared order of modification classes.
var ModificationTypes = []ModificationType{ModAdd, ModRemove, ModChange}

// definition is the raw, hand-maintained data for one language. All words
// must already be in normalized form: lowercase and NFC.
type definition struct {
	fillers        []string
	numbers        map[int][]string
	synonyms       map[string][]string // canonical form -> spoken variants
	collapseVowels bool
	sizes          map[Size][]string
	modifications  map[ModificationType][]string
	conjunctions   []string
	markers        []string
	patterns       []string // each has exactly one capture group
}

// rewrite maps a token sequence to its canonical form. Canonical forms are
// also stored, mapped to themselves, so they survive normalization intact.
type rewrite struct {
	words     []string
	canonical []string
}

// phrase is a keyword that may span several tokens.
type phrase struct {
	words []string
	kind  ModificationType
}

type wordSet map[string]struct{}

func newWordSet(words ...[]string) wordSet {
	s := make(wordSet)
	for _, ws := range words {
		for _, w := range ws {
			s[w] = struct{}{}
		}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// Table is the compiled lexicon for one language.
type Table struct {
	lang           Language
	fillers        wordSet
	numbers        map[string]int
	synonyms       map[string]string
	rewrites       []rewrite
	canonical      wordSet
	lexical        wordSet
	collapseVowels bool
	sizes          map[Size]wordSet
	modifications  []phrase
	conjunctions   wordSet
	markers        []phrase
	patterns       []*regexp.Regexp
}

var tables = map[Language]*Table{}

func register(lang Language, def definition) {
	tables[lang] = compile(lang, def)
}

// Lookup returns the table for lang or an *UnsupportedLanguageError.
func Lookup(lang Language) (*Table, error) {
	t, ok := tables[lang]
	if !ok {
		return nil, &UnsupportedLanguageError{Tag: string(lang)}
	}
	return t, nil
}

func compile(lang Language, def definition) *Table {
	t := &Table{
		lang:           lang,
		fillers:        newWordSet(def.fillers),
		numbers:        make(map[string]int),
		synonyms:       make(map[string]string),
		canonical:      make(wordSet),
		collapseVowels: def.collapseVowels,
		sizes:          make(map[Size]wordSet, len(SizeClasses)),
		conjunctions:   newWordSet(def.conjunctions),
	}

	var all [][]string
	for value, spellings := range def.numbers {
		for _, s := range spellings {
			if prev, ok := t.numbers[s]; ok && prev != value {
				panic(fmt.Sprintf("lexicon %s: number word %q declared as %d and %d", lang, s, prev, value))
			}
			t.numbers[s] = value
		}
		all = append(all, spellings)
	}
	for canonical, variants := range def.synonyms {
		for _, v := range variants {
			if prev, ok := t.synonyms[v]; ok && prev != canonical {
				panic(fmt.Sprintf("lexicon %s: synonym %q declared for %q and %q", lang, v, prev, canonical))
			}
			t.synonyms[v] = canonical
		}
		words := strings.Fields(canonical)
		for _, w := range words {
			t.canonical[w] = struct{}{}
		}
		t.rewrites = append(t.rewrites, rewrite{words: words, canonical: words})
		for _, v := range variants {
			t.rewrites = append(t.rewrites, rewrite{words: strings.Fields(v), canonical: words})
		}
		all = append(all, words)
	}
	for _, size := range SizeClasses {
		t.sizes[size] = newWordSet(def.sizes[size])
		all = append(all, def.sizes[size])
	}
	for _, kind := range ModificationTypes {
		for _, kw := range def.modifications[kind] {
			words := strings.Fields(kw)
			t.modifications = append(t.modifications, phrase{words: words, kind: kind})
			all = append(all, words)
		}
	}
	for _, m := range def.markers {
		words := strings.Fields(m)
		t.markers = append(t.markers, phrase{words: words})
		all = append(all, words)
	}
	all = append(all, def.fillers, def.conjunctions)
	t.lexical = newWordSet(all...)

	// Longest keyword first so "mit extra" wins over "mit". The sort is
	// stable, keeping declaration order among equal lengths.
	sort.SliceStable(t.modifications, func(i, j int) bool {
		return len(t.modifications[i].words) > len(t.modifications[j].words)
	})
	// Map iteration above is unordered; sort rewrites fully so matching
	// never depends on it. Canonical forms win ties against variants.
	sort.Slice(t.rewrites, func(i, j int) bool {
		a, b := t.rewrites[i], t.rewrites[j]
		if len(a.words) != len(b.words) {
			return len(a.words) > len(b.words)
		}
		aCanon, bCanon := slices.Equal(a.words, a.canonical), slices.Equal(b.words, b.canonical)
		if aCanon != bCanon {
			return aCanon
		}
		return strings.Join(a.words, " ") < strings.Join(b.words, " ")
	})
	sort.SliceStable(t.markers, func(i, j int) bool {
		return len(t.markers[i].words) > len(t.markers[j].words)
	})

	for _, p := range def.patterns {
		t.patterns = append(t.patterns, regexp.MustCompile(p))
	}
	return t
}

// Language returns the language the table was compiled for.
func (t *Table) Language() Language { return t.lang }

// IsFiller reports whether w carries no content and should be dropped.
func (t *Table) IsFiller(w string) bool { return t.fillers.has(w) }

// Number resolves a number word. Several spellings may share a value.
func (t *Table) Number(w string) (int, bool) {
	n, ok := t.numbers[w]
	return n, ok
}

// Synonym returns the canonical form for a dialect variant.
func (t *Table) Synonym(w string) (string, bool) {
	c, ok := t.synonyms[w]
	return c, ok
}

// RewriteAt matches the longest synonym variant or canonical form starting
// at tokens[i]. It returns the canonical words and the number of tokens
// consumed, or 0 when nothing matches.
func (t *Table) RewriteAt(tokens []string, i int) ([]string, int) {
	for _, r := range t.rewrites {
		if matchWords(tokens, i, r.words) {
			return r.canonical, len(r.words)
		}
	}
	return nil, 0
}

// IsLexical reports whether w appears anywhere in the table, either as a
// keyword or as part of a canonical synonym. Lexical words are never
// rewritten by normalization.
func (t *Table) IsLexical(w string) bool {
	return t.lexical.has(w) || t.canonical.has(w)
}

// CollapsesVowels reports whether the language writes long vowels by
// doubling them inconsistently ("drüü" and "drü").
func (t *Table) CollapsesVowels() bool { return t.collapseVowels }

// IsConjunction reports whether w joins two items ("und", "and").
func (t *Table) IsConjunction(w string) bool { return t.conjunctions.has(w) }

// HasSize reports whether w is an adjective of the given size class.
func (t *Table) HasSize(size Size, w string) bool { return t.sizes[size].has(w) }

// ModificationAt matches the longest modification keyword starting at
// tokens[i]. It returns the keyword class and the number of tokens the
// keyword spans, or 0 when nothing matches.
func (t *Table) ModificationAt(tokens []string, i int) (ModificationType, int) {
	for _, p := range t.modifications {
		if matchWords(tokens, i, p.words) {
			return p.kind, len(p.words)
		}
	}
	return "", 0
}

// MarkerAt matches the longest politeness or request marker starting at
// tokens[i] and returns its length in tokens, or 0.
func (t *Table) MarkerAt(tokens []string, i int) int {
	for _, p := range t.markers {
		if matchWords(tokens, i, p.words) {
			return len(p.words)
		}
	}
	return 0
}

// Patterns returns the ordered sentence templates used when a transcript
// contains no explicit quantity.
func (t *Table) Patterns() []*regexp.Regexp { return t.patterns }

func matchWords(tokens []string, i int, words []string) bool {
	if i+len(words) > len(tokens) {
		return false
	}
	for k, w := range words {
		if tokens[i+k] != w {
			return false
		}
	}
	return true
}
