package lexicon_test

import (
	"testing"

	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/book-expert/text-normalizer/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbols_EmbeddedTableIsComplete(t *testing.T) {
	t.Parallel()

	table := lexicon.Symbols()
	ordered := table.Ordered()

	require.Len(t, ordered, 9)
	assert.Equal(t, "₹", ordered[0].Symbol)
	assert.Equal(t, lexicon.PercentSymbol, ordered[len(ordered)-1].Symbol)

	for _, symbol := range ordered {
		for _, code := range lexicon.Codes() {
			word, ok := table.Word(symbol.Symbol, code)
			assert.True(t, ok, "symbol %q lacks %q", symbol.Symbol, code)
			assert.NotEmpty(t, word)
		}
	}
}

func TestSymbols_Word(t *testing.T) {
	t.Parallel()

	table := lexicon.Symbols()

	word, ok := table.Word("@", "hi")
	require.True(t, ok)
	assert.Equal(t, "आट", word)

	word, ok = table.Word("www", "en")
	require.True(t, ok)
	assert.Equal(t, "doubleyou doubleyou doubleyou", word)

	_, ok = table.Word("&", "en")
	assert.False(t, ok)
}

func TestParseSymbols_RejectsIncompleteEntry(t *testing.T) {
	t.Parallel()

	data := []byte(`
[[symbols]]
symbol = "@"
[symbols.words]
en = "at"
`)

	_, err := lexicon.ParseSymbols(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no word for language")
}

func TestParseSymbols_RejectsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := lexicon.ParseSymbols([]byte(`glyphs = []`))
	require.Error(t, err)
}

func TestPhonetic(t *testing.T) {
	t.Parallel()

	spelling, ok := lexicon.Phonetic('w')
	require.True(t, ok)
	assert.Equal(t, "doubleu", spelling)

	_, ok = lexicon.Phonetic('W')
	assert.False(t, ok, "lookup is on lowercase letters only")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code       string
		terminator rune
		appendStop bool
		translate  bool
		native     bool
	}{
		{code: "en", terminator: lexicon.Period, appendStop: true, translate: false, native: true},
		{code: "hi", terminator: lexicon.Period, appendStop: true, translate: true, native: true},
		{code: "brx", terminator: lexicon.Danda, appendStop: false, translate: false, native: false},
		{code: "or", terminator: lexicon.Danda, appendStop: false, translate: true, native: false},
		{code: "ta", terminator: lexicon.Period, appendStop: true, translate: true, native: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.code, func(t *testing.T) {
			t.Parallel()

			lang, err := lexicon.Lookup(testCase.code)
			require.NoError(t, err)
			assert.Equal(t, testCase.terminator, lang.Terminator)
			assert.Equal(t, testCase.appendStop, lang.AppendTerminator)
			assert.Equal(t, testCase.translate, lang.TranslateDates)
			assert.Equal(t, testCase.native, lang.NativeCardinals)
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := lexicon.Lookup("fr")
	require.ErrorIs(t, err, core.ErrUnsupportedLanguage)

	assert.Len(t, lexicon.Codes(), 15)
}
