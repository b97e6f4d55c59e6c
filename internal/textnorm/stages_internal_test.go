package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalSubstitution(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12 point 3 4 5", decimalSubstitution("12.345"))
	assert.Equal(t, "0 point 5", decimalSubstitution("0.5"))
}

func TestNormalizeDecimals(t *testing.T) {
	t.Parallel()

	normalizer := &Normalizer{extractor: NewExtractor()}

	assert.Equal(t, "The value is 12 point 3 4 5 units", normalizer.normalizeDecimals("The value is 12.345 units"))
	assert.Equal(t, "Price 1234 point 5", normalizer.normalizeDecimals("Price 1,234.5"))
}

func TestSpellDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plus 9 1 4 2", spellDigits(" plus 91 42"))
	assert.Equal(t, "1 0 dash x", spellDigits("10 dash x"))
	assert.Equal(t, "९ ८ ७ ६", spellDigits("९८ ७६"))
}

func TestASCIIDigits(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"२५":       "25",
		"১২":       "12",
		"௧௦":       "10",
		"a1٣":      "a13",
		"1,23,456": "1,23,456",
		"सेब":      "सेब",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ASCIIDigits(input), input)
	}
}

func TestReplaceFirstWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		old      string
		expected string
	}{
		{name: "skips letters inside words", text: "your r value", old: "r", expected: "your aar value"},
		{name: "skips accented words", text: "résumé r", old: "r", expected: "résumé aar"},
		{name: "no whole word", text: "Zürich", old: "Z", expected: "Zürich"},
		{name: "trailing dot needs no boundary", text: "the U.S.A. team", old: "U.S.A.", expected: "the aar team"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, replaceFirstWord(testCase.text, testCase.old, "aar"))
		})
	}
}
