package lexicon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllLanguagesRegistered(t *testing.T) {
	t.Parallel()

	for _, lang := range Languages {
		table, err := Lookup(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, lang, table.Language())
		assert.True(t, lang.Valid())
		assert.NotEmpty(t, table.Patterns(), lang)
	}
}

func TestLookup_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Lookup("tlh")
	var unsupported *UnsupportedLanguageError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "tlh", unsupported.Tag)
	assert.False(t, Language("tlh").Valid())
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag     string
		want    Language
		wantErr bool
	}{
		{tag: "gsw", want: SwissGerman},
		{tag: "de-CH", want: SwissGerman},
		{tag: "de_CH", want: SwissGerman},
		{tag: " German ", want: German},
		{tag: "fr", want: French},
		{tag: "Français", want: French},
		{tag: "italian", want: Italian},
		{tag: "en-GB", want: English},
		{tag: "", wantErr: true},
		{tag: "klingon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLanguage(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberWords(t *testing.T) {
	t.Parallel()

	gsw, err := Lookup(SwissGerman)
	require.NoError(t, err)

	for _, w := range []string{"zwei", "zwöi", "zwee", "zwo"} {
		n, ok := gsw.Number(w)
		require.True(t, ok, w)
		assert.Equal(t, 2, n, w)
	}
	for _, w := range []string{"drü", "drüü", "drei"} {
		n, ok := gsw.Number(w)
		require.True(t, ok, w)
		assert.Equal(t, 3, n, w)
	}
	_, ok := gsw.Number("kaffee")
	assert.False(t, ok)
}

func TestModificationAt_LongestKeywordWins(t *testing.T) {
	t.Parallel()

	gsw, err := Lookup(SwissGerman)
	require.NoError(t, err)

	kind, n := gsw.ModificationAt([]string{"mit", "extra", "käs"}, 0)
	assert.Equal(t, ModAdd, kind)
	assert.Equal(t, 2, n)

	kind, n = gsw.ModificationAt([]string{"mit", "milch"}, 0)
	assert.Equal(t, ModAdd, kind)
	assert.Equal(t, 1, n)

	kind, n = gsw.ModificationAt([]string{"nöd", "mit", "zucker"}, 0)
	assert.Equal(t, ModRemove, kind)
	assert.Equal(t, 2, n)

	_, n = gsw.ModificationAt([]string{"kaffee"}, 0)
	assert.Zero(t, n)
}

func TestMarkerAt(t *testing.T) {
	t.Parallel()

	en, err := Lookup(English)
	require.NoError(t, err)

	assert.Equal(t, 2, en.MarkerAt([]string{"thank", "you"}, 0))
	assert.Equal(t, 1, en.MarkerAt([]string{"a", "please"}, 1))
	assert.Zero(t, en.MarkerAt([]string{"thank"}, 0))
}

func TestRewriteAt(t *testing.T) {
	t.Parallel()

	en, err := Lookup(English)
	require.NoError(t, err)

	words, n := en.RewriteAt([]string{"soda", "water", "please"}, 0)
	assert.Equal(t, []string{"sparkling", "water"}, words)
	assert.Equal(t, 2, n)

	words, n = en.RewriteAt([]string{"fries"}, 0)
	assert.Equal(t, []string{"french", "fries"}, words)
	assert.Equal(t, 1, n)

	// Canonical forms rewrite to themselves.
	words, n = en.RewriteAt([]string{"french", "fries"}, 0)
	assert.Equal(t, []string{"french", "fries"}, words)
	assert.Equal(t, 2, n)

	_, n = en.RewriteAt([]string{"burger"}, 0)
	assert.Zero(t, n)
}

func TestSizes(t *testing.T) {
	t.Parallel()

	gsw, err := Lookup(SwissGerman)
	require.NoError(t, err)

	assert.True(t, gsw.HasSize(SizeSmall, "chli"))
	assert.True(t, gsw.HasSize(SizeLarge, "grosse"))
	assert.False(t, gsw.HasSize(SizeLarge, "chli"))
}

func TestCompile_ConflictingNumberPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		compile("xx", definition{numbers: map[int][]string{1: {"uno"}, 2: {"uno"}}})
	})
}

func TestCompile_ConflictingSynonymPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		compile("xx", definition{synonyms: map[string][]string{
			"coffee": {"joe"},
			"tea":    {"joe"},
		}})
	})
}
