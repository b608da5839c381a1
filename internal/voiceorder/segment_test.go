package voiceorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

type wantItem struct {
	name string
	qty  int
	size Size
}

func segmentText(t *testing.T, text string, lang lexicon.Language) []wantItem {
	t.Helper()
	table, err := lexicon.Lookup(lang)
	require.NoError(t, err)

	var got []wantItem
	for _, c := range segment(table, normalizeTokens(table, text)) {
		got = append(got, wantItem{name: c.item.RawName, qty: c.item.Quantity, size: c.item.Size})
	}
	return got
}

func TestSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		lang lexicon.Language
		want []wantItem
	}{
		{
			name: "number word and synonym",
			text: "zwei kafi bitte",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "kaffee", qty: 2}},
		},
		{
			name: "conjunction splits items",
			text: "zwöi kafi und drüü gipfeli",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "kaffee", qty: 2}, {name: "gipfeli", qty: 3}},
		},
		{
			name: "digits",
			text: "3 espresso, 1 croissant",
			lang: lexicon.English,
			want: []wantItem{{name: "espresso", qty: 3}, {name: "croissant", qty: 1}},
		},
		{
			name: "modification keyword ends item",
			text: "a burger without onions",
			lang: lexicon.English,
			want: []wantItem{{name: "burger", qty: 1}},
		},
		{
			name: "article inside removal phrase",
			text: "ich hätte gern einen kaffee ohne eine scheibe zitrone",
			lang: lexicon.German,
			want: []wantItem{{name: "kaffee", qty: 1}},
		},
		{
			name: "article inside dialect add phrase",
			text: "zwei kafi mit e bitz milch",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "kaffee", qty: 2}},
		},
		{
			name: "article inside english add phrase",
			text: "i would like a coffee with a lot of milk",
			lang: lexicon.English,
			want: []wantItem{{name: "coffee", qty: 1}},
		},
		{
			name: "item after modifier phrase",
			text: "zwei kafi ohni zucker und eis gipfeli",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "kaffee", qty: 2}, {name: "gipfeli", qty: 1}},
		},
		{
			name: "size extracted",
			text: "en grosse kafi",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "kaffee", qty: 1, size: lexicon.SizeLarge}},
		},
		{
			name: "multi-word item",
			text: "deux chocolat chaud et un croissant",
			lang: lexicon.French,
			want: []wantItem{{name: "chocolat chaud", qty: 2}, {name: "croissant", qty: 1}},
		},
		{
			name: "quantity without name is ignored",
			text: "zwei, und en tee",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "tee", qty: 1}},
		},
		{
			name: "pattern fallback",
			text: "ich möcht gipfeli",
			lang: lexicon.SwissGerman,
			want: []wantItem{{name: "gipfeli", qty: 1}},
		},
		{
			name: "pattern fallback truncated at boundary",
			text: "I'd like fries with ketchup",
			lang: lexicon.English,
			want: []wantItem{{name: "french fries", qty: 1}},
		},
		{
			name: "pattern fallback skips leading punctuation",
			text: "vorrei, ehm, cornetto",
			lang: lexicon.Italian,
			want: []wantItem{{name: "cornetto", qty: 1}},
		},
		{
			name: "politeness pattern",
			text: "croissant please",
			lang: lexicon.English,
			want: []wantItem{{name: "croissant", qty: 1}},
		},
		{
			name: "zero is not a quantity",
			text: "0 coffee",
			lang: lexicon.English,
		},
		{
			name: "nothing recognised",
			text: "hello there",
			lang: lexicon.English,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, segmentText(t, tt.text, tt.lang))
		})
	}
}

func TestExtractSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		lang     lexicon.Language
		wantName string
		wantSize Size
	}{
		{name: "dialect large", input: "grosse kafi", lang: lexicon.SwissGerman, wantName: "kaffee", wantSize: lexicon.SizeLarge},
		{name: "dialect small", input: "chlis bier", lang: lexicon.SwissGerman, wantName: "bier", wantSize: lexicon.SizeSmall},
		{name: "adjective after noun", input: "coffee large", lang: lexicon.English, wantName: "coffee", wantSize: lexicon.SizeLarge},
		{name: "small class checked first", input: "small large coffee", lang: lexicon.English, wantName: "large coffee", wantSize: lexicon.SizeSmall},
		{name: "size word alone kept", input: "gross", lang: lexicon.SwissGerman, wantName: "gross", wantSize: lexicon.SizeLarge},
		{name: "no size", input: "tea", lang: lexicon.English, wantName: "tea"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, size, err := ExtractSize(tt.input, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
