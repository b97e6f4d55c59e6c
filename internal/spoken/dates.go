// Package spoken converts written dates into their English spoken form.
//
// DateVerbalizer is the in-process implementation of core.SpokenFormer. It
// reads day-first dates ("12/08/1990") and year-first dates ("1990-08-12");
// a day-first date whose middle part cannot be a month is read month-first.
package spoken

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/book-expert/text-normalizer/internal/textnorm"
)

const (
	lang            = "en"
	monthsInYear    = 12
	daysInMonth     = 31
	yearDigitsShort = 2
	yearDigitsFull  = 4
	hundredsBase    = 100
	thousandsBase   = 1000
	twoThousand     = 2000
	twoThousandTen  = 2010
	singleDigitTop  = 10
	wordOh          = "oh"
	wordHundred     = "hundred"
)

var (
	dateShape = regexp.MustCompile(`^(\d{1,4})[./-](\d{1,2})[./-](\d{1,4})$`)

	monthNames = [monthsInYear + 1]string{
		"", "january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}

	irregularOrdinals = map[string]string{
		"one":    "first",
		"two":    "second",
		"three":  "third",
		"five":   "fifth",
		"eight":  "eighth",
		"nine":   "ninth",
		"twelve": "twelfth",
		"twenty": "twentieth",
		"thirty": "thirtieth",
	}
)

// DateVerbalizer implements core.SpokenFormer for dates. It is stateless.
type DateVerbalizer struct{}

// NewDateVerbalizer creates a DateVerbalizer.
func NewDateVerbalizer() *DateVerbalizer {
	return &DateVerbalizer{}
}

type calendarDate struct {
	day   int
	month int
	year  string
}

// SpokenForm returns the spoken form of a date written with digits of any
// script. Text that is not a valid date is read as its numeric parts.
func (v *DateVerbalizer) SpokenForm(ctx context.Context, text string) (string, error) {
	err := ctx.Err()
	if err != nil {
		return "", fmt.Errorf("spoken form cancelled: %w", err)
	}

	parts := dateShape.FindStringSubmatch(textnorm.ASCIIDigits(strings.TrimSpace(text)))
	if parts == nil {
		return text, nil
	}

	date, ok := parseDate(parts[1], parts[2], parts[3])
	if !ok {
		return readParts(parts[1:])
	}

	year, err := yearWords(date.year)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("the %s of %s %s", ordinal(date.day), monthNames[date.month], year), nil
}

func parseDate(first, second, third string) (calendarDate, bool) {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	c, _ := strconv.Atoi(third)

	if len(first) > yearDigitsShort {
		return validate(calendarDate{day: c, month: b, year: first})
	}

	if b > monthsInYear && a <= monthsInYear {
		a, b = b, a
	}

	return validate(calendarDate{day: a, month: b, year: third})
}

func validate(date calendarDate) (calendarDate, bool) {
	if date.month < 1 || date.month > monthsInYear {
		return date, false
	}

	if date.day < 1 || date.day > daysInMonth {
		return date, false
	}

	return date, true
}

// yearWords reads a year the way it is spoken: 1990 is "nineteen ninety",
// 1905 is "nineteen oh five", 2005 is "two thousand five".
func yearWords(year string) (string, error) {
	value, err := strconv.Atoi(year)
	if err != nil {
		return "", fmt.Errorf("invalid year %q: %w", year, err)
	}

	switch {
	case len(year) == yearDigitsShort && value < singleDigitTop:
		return wordOh + " " + cardinal(value), nil
	case len(year) != yearDigitsFull:
		return cardinal(value), nil
	case value >= twoThousand && value < twoThousandTen:
		return cardinal(value), nil
	}

	high, low := value/hundredsBase, value%hundredsBase

	switch {
	case low == 0 && value%thousandsBase == 0:
		return cardinal(value), nil
	case low == 0:
		return cardinal(high) + " " + wordHundred, nil
	case low < singleDigitTop:
		return cardinal(high) + " " + wordOh + " " + cardinal(low), nil
	default:
		return cardinal(high) + " " + cardinal(low), nil
	}
}

func ordinal(num int) string {
	words := strings.Fields(cardinal(num))
	last := words[len(words)-1]

	if irregular, ok := irregularOrdinals[last]; ok {
		words[len(words)-1] = irregular
	} else {
		words[len(words)-1] = last + "th"
	}

	return strings.Join(words, " ")
}

func readParts(parts []string) (string, error) {
	words := make([]string, 0, len(parts))

	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return "", fmt.Errorf("invalid date part %q: %w", part, err)
		}

		words = append(words, cardinal(value))
	}

	return strings.Join(words, " "), nil
}

func cardinal(num int) string {
	// English always has native cardinals.
	words, _ := textnorm.CardinalToWords(int64(num), lang)

	return words
}
