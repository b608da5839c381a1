// Package voiceorder turns a spoken-order transcript into a structured
// order draft and resolves its items against a tenant's spoken menu.
//
// Parsing is a pure function of (transcript, language) and matching a pure
// function of (items, catalog snapshot). Neither performs I/O, so both may
// run concurrently without locking.
package voiceorder

import "github.com/nadzzz/ordertaker/internal/lexicon"

// Size is the canonical size of an item; the zero value means unspecified.
type Size = lexicon.Size

// ModificationType is add, remove or change.
type ModificationType = lexicon.ModificationType

// TargetCurrent is the placeholder target of an unbound modification. The
// downstream order-composition service decides which item it applies to.
const TargetCurrent = "current"

// ParsedOrderItem is one item extracted from a transcript.
//
// Quantity is always at least 1. Matched is false exactly when Confidence
// is 0, and then CanonicalName and CatalogID are empty.
type ParsedOrderItem struct {
	RawName       string   `json:"raw_name"`
	CanonicalName string   `json:"canonical_name,omitempty"`
	CatalogID     string   `json:"catalog_id,omitempty"`
	Quantity      int      `json:"quantity"`
	Size          Size     `json:"size,omitempty"`
	Modifiers     []string `json:"modifiers"`
	Matched       bool     `json:"matched"`
	Confidence    float64  `json:"confidence"`
}

// OrderModification is an add/remove/change instruction found anywhere in
// the transcript. ItemIndex is -1 unless modification binding is enabled
// and an item precedes the instruction.
type OrderModification struct {
	Type           ModificationType `json:"type"`
	TargetItem     string           `json:"target_item"`
	ItemIndex      int              `json:"item_index"`
	Keyword        string           `json:"keyword"`
	ModifierPhrase string           `json:"modifier_phrase"`
}

// ParsedOrder is the result of one parse. Slices are never nil.
type ParsedOrder struct {
	Items           []ParsedOrderItem   `json:"items"`
	Modifications   []OrderModification `json:"modifications"`
	SpecialRequests []string            `json:"special_requests"`
}

// UnmatchedCount returns how many items did not resolve to a catalog entry.
func (o ParsedOrder) UnmatchedCount() int {
	return CountUnmatched(o.Items)
}

// CountUnmatched returns how many of items are unmatched.
func CountUnmatched(items []ParsedOrderItem) int {
	n := 0
	for _, it := range items {
		if !it.Matched {
			n++
		}
	}
	return n
}

func emptyOrder() ParsedOrder {
	return ParsedOrder{
		Items:           []ParsedOrderItem{},
		Modifications:   []OrderModification{},
		SpecialRequests: []string{},
	}
}
