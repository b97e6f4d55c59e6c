package textnorm

import (
	"strings"
	"unicode"
)

const digitsPerScript = 10

// ASCIIDigits rewrites every decimal digit of any script as its ASCII digit,
// so "२५" becomes "25". Other runes are kept.
func ASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		value, ok := digitValue(r)
		if !ok {
			return r
		}

		return '0' + rune(value)
	}, s)
}

// digitValue returns the value of a decimal digit. Unicode allocates decimal
// digits in contiguous zero-to-nine runs, and every Nd range starts at a zero.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}

	if !unicode.IsDigit(r) {
		return 0, false
	}

	for _, rng := range unicode.Nd.R16 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % digitsPerScript, true
		}
	}

	for _, rng := range unicode.Nd.R32 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % digitsPerScript, true
		}
	}

	return 0, false
}
