package voiceorder

import (
	"strings"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

type modCandidate struct {
	mod OrderModification
	pos int
}

// extractModifications scans the whole transcript for add/remove/change
// keywords independently of item segmentation. The longest keyword at a
// position wins; its phrase runs up to the next conjunction, modification
// keyword, politeness marker or punctuation. Results are in order of
// occurrence.
func extractModifications(t *lexicon.Table, tokens []string) []modCandidate {
	var out []modCandidate
	for i := 0; i < len(tokens); {
		kind, n := t.ModificationAt(tokens, i)
		if n == 0 {
			i++
			continue
		}
		start := i + n
		end := spanEnd(t, tokens, start, len(tokens))
		if end > start {
			out = append(out, modCandidate{
				mod: OrderModification{
					Type:           kind,
					TargetItem:     TargetCurrent,
					ItemIndex:      -1,
					Keyword:        strings.Join(tokens[i:start], " "),
					ModifierPhrase: strings.Join(tokens[start:end], " "),
				},
				pos: i,
			})
		}
		i = end
	}
	return out
}

// bindModifications attaches every modification to the nearest item that
// starts before it. Modifications preceding all items stay unbound.
func bindModifications(items []candidate, mods []modCandidate) ([]ParsedOrderItem, []OrderModification) {
	boundItems := make([]ParsedOrderItem, len(items))
	for i, c := range items {
		boundItems[i] = c.item
		boundItems[i].Modifiers = append([]string{}, c.item.Modifiers...)
	}
	boundMods := make([]OrderModification, len(mods))
	for k, m := range mods {
		boundMods[k] = m.mod
		idx := -1
		for i, c := range items {
			if c.start < m.pos {
				idx = i
			}
		}
		if idx < 0 {
			continue
		}
		boundMods[k].ItemIndex = idx
		boundItems[idx].Modifiers = append(boundItems[idx].Modifiers, m.mod.Keyword+" "+m.mod.ModifierPhrase)
	}
	return boundItems, boundMods
}
