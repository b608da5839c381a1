// Package lexicon holds the per-language word tables used to interpret
// spoken orders: filler words, number words, dialect synonyms, size
// adjectives, modification keywords, conjunctions, politeness markers and
// sentence templates.
//
// Tables are built once at package initialisation and never mutated, so a
// *Table may be shared freely between goroutines.
package lexicon

import (
	"fmt"
	"strings"
)

// Language identifies one supported language or dialect.
type Language string

const (
	// SwissGerman is the Zurich variant of Swiss German (ISO 639-2 "gsw").
	SwissGerman Language = "gsw"
	German      Language = "de"
	French      Language = "fr"
	Italian     Language = "it"
	English     Language = "en"
)

// Languages lists every supported language in a stable order.
var Languages = []Language{SwissGerman, German, French, Italian, English}

// UnsupportedLanguageError is returned when a language tag does not select
// any lexicon.
type UnsupportedLanguageError struct {
	Tag string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Tag)
}

// languageAliases maps tags and names reported by transcription backends to
// a Language. Whisper's verbose_json reports English language names.
var languageAliases = map[string]Language{
	"gsw":          SwissGerman,
	"de-ch":        SwissGerman,
	"gsw-ch":       SwissGerman,
	"swiss german": SwissGerman,
	"swissgerman":  SwissGerman,
	"de":           German,
	"de-de":        German,
	"de-at":        German,
	"german":       German,
	"deutsch":      German,
	"fr":           French,
	"fr-fr":        French,
	"fr-ch":        French,
	"french":       French,
	"français":     French,
	"it":           Italian,
	"it-it":        Italian,
	"it-ch":        Italian,
	"italian":      Italian,
	"italiano":     Italian,
	"en":           English,
	"en-us":        English,
	"en-gb":        English,
	"english":      English,
}

// ParseLanguage resolves a language tag or name, case-insensitively.
// Underscores are accepted in place of hyphens ("de_CH").
func ParseLanguage(tag string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(tag))
	key = strings.ReplaceAll(key, "_", "-")
	if lang, ok := languageAliases[key]; ok {
		return lang, nil
	}
	return "", &UnsupportedLanguageError{Tag: tag}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := tables[l]
	return ok
}

func (l Language) String() string { return string(l) }
