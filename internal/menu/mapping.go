// Package menu resolves spoken item names against a tenant's spoken-menu
// catalog. A catalog is a slice of VoiceMenuMapping values; the matcher only
// reads it.
package menu

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// VoiceMenuMapping ties a catalog item to the names customers say for it.
// The first non-blank spoken name is the display name reported on a match.
type VoiceMenuMapping struct {
	CanonicalID string   `json:"canonical_id" yaml:"canonical_id"`
	SpokenNames []string `json:"spoken_names" yaml:"spoken_names"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// PrimaryName returns the first non-blank spoken name, or "" for a
// malformed entry.
func (m VoiceMenuMapping) PrimaryName() string {
	for _, n := range m.SpokenNames {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return ""
}

// Valid reports whether the entry carries at least one non-blank spoken name.
func (m VoiceMenuMapping) Valid() bool {
	for _, n := range m.SpokenNames {
		if fold(n) != "" {
			return true
		}
	}
	return false
}

// fold brings a name into comparison form: NFC, lowercase, single spaces.
func fold(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(strings.ToLower(s))), " ")
}
