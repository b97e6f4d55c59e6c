package textnorm_test

import (
	"testing"

	"github.com/book-expert/text-normalizer/internal/textnorm"
	"github.com/stretchr/testify/assert"
)

func spanTexts(spans []textnorm.Span) []string {
	texts := make([]string, 0, len(spans))
	for _, span := range spans {
		texts = append(texts, span.Text)
	}

	return texts
}

func TestExtractor_IndicAcronyms(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	assert.Equal(t, []string{"आई. आई. टी. "}, extractor.IndicAcronyms("आई. आई. टी. दिल्ली"))
	assert.Empty(t, extractor.IndicAcronyms("एक वाक्य. दूसरा"))
}

func TestExtractor_Shortforms(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	spans := extractor.Shortforms("I met U.S.A. officials")
	assert.Equal(t, []string{"I", "U.S.A.", "S"}, spanTexts(spans))

	for _, span := range spans {
		assert.Equal(t, textnorm.SpanShortform, span.Kind)
	}

	assert.Equal(t, []string{"BBC"}, spanTexts(extractor.Shortforms("Watch BBC news")))
}

func TestExtractor_Shortforms_AccentedWords(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	assert.Empty(t, extractor.Shortforms("Update your résumé"))
	assert.Empty(t, extractor.Shortforms("Welcome to Zürich"))
	assert.Empty(t, extractor.Shortforms("Café crème"))
	assert.Equal(t, []string{"BBC"}, spanTexts(extractor.Shortforms("BBC in Zürich")))
	assert.Equal(t, []string{"U.S.", "S"}, spanTexts(extractor.Shortforms("the U.S. and Zürich")))
}

func TestExtractor_Numerals(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	assert.Equal(t, []string{"1,23,456.78", "3.5"}, spanTexts(extractor.Decimals("Rs 1,23,456.78 and 3.5")))
	assert.Equal(t, []string{"12", "1,000"}, spanTexts(extractor.Numbers("12 apples and 1,000 pears")))
	assert.Equal(t, []string{"२५"}, spanTexts(extractor.Numbers("मेरे पास २५ सेब")))
	assert.Equal(t, []string{"১২.৫"}, spanTexts(extractor.Decimals("দাম ১২.৫ টাকা")))
}

func TestExtractor_Dates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "day first", input: "Born 12/08/1990 in city", expected: []string{"12/08/1990"}},
		{name: "year first", input: "on 2021-03-23.", expected: []string{"2021-03-23"}},
		{name: "too long to be a date", input: "ref 123456/7890/12345 x", expected: []string{}},
		{name: "single separator", input: "pages 10-20", expected: []string{}},
		{name: "devanagari digits", input: "जन्म १२/०८/१९९० को", expected: []string{"१२/०८/१९९०"}},
	}

	extractor := textnorm.NewExtractor()

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, spanTexts(extractor.Dates(testCase.input)))
		})
	}
}

func TestExtractor_EmailsAndURLs(t *testing.T) {
	t.Parallel()

	spans := textnorm.NewExtractor().EmailsAndURLs("mail a@b.com or see example.com/docs")
	assert.Equal(t, []string{"a@b.com", "b.com", "example.com/docs"}, spanTexts(spans))
}

func TestExtractor_CurrenciesAndPhones(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	assert.Equal(t, []string{"₹ 1,500.50"}, spanTexts(extractor.Currencies("Pay ₹ 1,500.50 today")))
	assert.Equal(t, []string{"+91 98765-43210"}, spanTexts(extractor.Phones("Call +91 98765-43210 today")))
	assert.Empty(t, extractor.Phones("Room 42"))
}

func TestExtractor_Collapse(t *testing.T) {
	t.Parallel()

	extractor := textnorm.NewExtractor()

	assert.Equal(t, "Wait. what.", extractor.CollapseStops("Wait... what.."))
	assert.Equal(t, "a b c", extractor.CollapseSpaces("a   b  c"))
}
