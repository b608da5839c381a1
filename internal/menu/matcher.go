package menu

import (
	"log/slog"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

const (
	// DefaultThreshold is the similarity an approximate match must exceed.
	DefaultThreshold = 0.7
	// DefaultExactConfidence is reported for an exact spoken-name hit.
	DefaultExactConfidence = 1.0
	// DefaultAliasConfidence is reported for an alias hit.
	DefaultAliasConfidence = 0.9
)

// MatchKind tells how a name was resolved.
type MatchKind string

const (
	KindNone  MatchKind = "none"
	KindExact MatchKind = "exact"
	KindAlias MatchKind = "alias"
	KindFuzzy MatchKind = "fuzzy"
)

// Match is the outcome of resolving one name. Confidence is 0 exactly when
// Matched is false.
type Match struct {
	CanonicalID   string
	CanonicalName string
	Kind          MatchKind
	Confidence    float64
	Matched       bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the similarity an approximate match must exceed.
func WithThreshold(v float64) Option {
	return func(m *Matcher) { m.threshold = clamp(v) }
}

// WithExactConfidence sets the confidence reported for exact matches.
func WithExactConfidence(v float64) Option {
	return func(m *Matcher) { m.exactConfidence = clamp(v) }
}

// WithAliasConfidence sets the confidence reported for alias matches.
func WithAliasConfidence(v float64) Option {
	return func(m *Matcher) { m.aliasConfidence = clamp(v) }
}

// WithLogger sets the logger that receives catalog data-quality warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// Matcher resolves raw item names. It is read-only after construction and
// safe for concurrent use.
type Matcher struct {
	threshold       float64
	exactConfidence float64
	aliasConfidence float64
	logger          *slog.Logger
}

// NewMatcher creates a Matcher with the default threshold and confidences.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		threshold:       DefaultThreshold,
		exactConfidence: DefaultExactConfidence,
		aliasConfidence: DefaultAliasConfidence,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the configured approximate-match threshold.
func (m *Matcher) Threshold() float64 { return m.threshold }

// Match resolves raw against catalog. Exact spoken names are tried first,
// then aliases, then the closest spoken name by edit distance. Within each
// stage the earliest catalog entry wins. Entries without spoken names are
// skipped.
func (m *Matcher) Match(raw string, catalog []VoiceMenuMapping) Match {
	key := fold(raw)
	if key == "" {
		return Match{Kind: KindNone}
	}

	entries := make([]VoiceMenuMapping, 0, len(catalog))
	for i, e := range catalog {
		if !e.Valid() {
			m.logger.Warn("skipping catalog entry without spoken names",
				"index", i, "canonical_id", e.CanonicalID)
			continue
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		for _, n := range e.SpokenNames {
			if fold(n) == key {
				return m.hit(e, KindExact, m.exactConfidence)
			}
		}
	}
	for _, e := range entries {
		for _, a := range e.Aliases {
			if fold(a) == key {
				return m.hit(e, KindAlias, m.aliasConfidence)
			}
		}
	}

	var best *VoiceMenuMapping
	bestScore := 0.0
	for i := range entries {
		for _, n := range entries[i].SpokenNames {
			folded := fold(n)
			if folded == "" {
				continue
			}
			if s := Similarity(key, folded); s > bestScore {
				best, bestScore = &entries[i], s
			}
		}
	}
	if best != nil && bestScore > m.threshold {
		return m.hit(*best, KindFuzzy, bestScore)
	}
	return Match{Kind: KindNone}
}

func (m *Matcher) hit(e VoiceMenuMapping, kind MatchKind, confidence float64) Match {
	if confidence <= 0 {
		// A zero confidence would read as "unmatched" downstream.
		return Match{Kind: KindNone}
	}
	return Match{
		CanonicalID:   e.CanonicalID,
		CanonicalName: e.PrimaryName(),
		Kind:          kind,
		Confidence:    confidence,
		Matched:       true,
	}
}

// Similarity returns 1 - lev(a, b) / max(len(a), len(b)) measured in runes.
// It is symmetric and lies in [0, 1]; two empty strings are identical.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(matchr.Levenshtein(a, b))/float64(longest)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
