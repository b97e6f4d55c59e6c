package spoken_test

import (
	"context"
	"testing"

	"github.com/book-expert/text-normalizer/internal/spoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateVerbalizer_SpokenForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "day first", input: "12/08/1990", expected: "the twelfth of august nineteen ninety"},
		{name: "dashes", input: "1-1-2005", expected: "the first of january two thousand five"},
		{name: "year first", input: "2021.03.23", expected: "the twenty third of march twenty twenty one"},
		{name: "month first fallback", input: "08/25/1999", expected: "the twenty fifth of august nineteen ninety nine"},
		{name: "short year", input: "03/02/07", expected: "the third of february oh seven"},
		{name: "oh year", input: "30/11/1905", expected: "the thirtieth of november nineteen oh five"},
		{name: "round century", input: "9/9/1900", expected: "the ninth of september nineteen hundred"},
		{name: "millennium", input: "31/12/2000", expected: "the thirty first of december two thousand"},
		{name: "invalid month", input: "31/31/2000", expected: "thirty one thirty one two thousand"},
		{name: "not a date", input: "hello", expected: "hello"},
		{name: "devanagari digits", input: "१२/०८/१९९०", expected: "the twelfth of august nineteen ninety"},
	}

	verbalizer := spoken.NewDateVerbalizer()

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := verbalizer.SpokenForm(context.Background(), testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestDateVerbalizer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := spoken.NewDateVerbalizer().SpokenForm(ctx, "12/08/1990")
	require.ErrorIs(t, err, context.Canceled)
}
