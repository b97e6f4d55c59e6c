package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Regex patterns for the extractors.
const (
	indicAcronymPattern     = `(?:[\p{L}\p{M}]+\.\s*){2,}`
	dottedShortformPattern  = `(?:[A-Z][.\s]+)+(?:[A-Z])?`
	consonantWordPattern    = `[BCDFGHJKLMNPQRSTVWXZbcdfghjklmnpqrstvwxz]+`
	decimalPattern          = `\p{Nd}{1,3}(?:(?:,\p{Nd}{2,3}){1,3}|\p{Nd}{1,7})?\.\p{Nd}+`
	numberPattern           = `\p{Nd}{1,3}(?:(?:,\p{Nd}{2,3}){1,3}|\p{Nd}{1,7})?(?:\.\p{Nd}+)?`
	multipleStopsPattern    = `\.\.+`
	multipleSpacesPattern   = ` {2,}`
	dateCandidatePattern    = `[^\p{Nd}]\p{Nd}*[./-]\p{Nd}*[./-]\p{Nd}*`
	datePattern             = `\p{Nd}{1,2}[./-]\p{Nd}{1,2}[./-]\p{Nd}{2,4}|\p{Nd}{2,4}[./-]\p{Nd}{1,2}[./-]\p{Nd}{1,2}`
	emailPattern            = `[\w.+-]+@[\w-]+\.[\w.-]+`
	urlPattern              = `((?:\w+://)?\w+\.\w+\.\w+/?[\w.?=#]*)|(\w*\.com/?[\w.?=#]*)`
	currencyPattern         = `₹ ?[+-]?[0-9]{1,3}(?:,?[0-9])*(?:\.[0-9]{1,2})?`
	phonePattern            = `\+?\p{Nd}[ \p{Nd}-]{6,12}\p{Nd}`
	maxDateCandidateLength  = 10
	dateCandidateSeparator  = " "
	dateCandidateWhitespace = " "
)

// SpanKind is the semantic class of an extracted span.
type SpanKind int

// Span kinds.
const (
	SpanShortform SpanKind = iota
	SpanDecimal
	SpanNumber
	SpanDate
	SpanEmailOrURL
	SpanCurrency
	SpanPhone
)

// Span is a literal substring found by an extractor.
type Span struct {
	Text string
	Kind SpanKind
}

// Extractor finds the pattern classes the normalizer rewrites. It holds only
// compiled patterns and is safe for concurrent use.
type Extractor struct {
	indicAcronym    *regexp.Regexp
	dottedShortform wordPattern
	consonantWord   wordPattern
	decimal         *regexp.Regexp
	number          *regexp.Regexp
	multipleStops   *regexp.Regexp
	multipleSpaces  *regexp.Regexp
	dateCandidate   *regexp.Regexp
	date            *regexp.Regexp
	email           *regexp.Regexp
	url             *regexp.Regexp
	currency        *regexp.Regexp
	phone           *regexp.Regexp
}

// NewExtractor compiles every extractor pattern.
func NewExtractor() *Extractor {
	return &Extractor{
		indicAcronym:    regexp.MustCompile(indicAcronymPattern),
		dottedShortform: newWordPattern(dottedShortformPattern),
		consonantWord:   newWordPattern(consonantWordPattern),
		decimal:         regexp.MustCompile(decimalPattern),
		number:          regexp.MustCompile(numberPattern),
		multipleStops:   regexp.MustCompile(multipleStopsPattern),
		multipleSpaces:  regexp.MustCompile(multipleSpacesPattern),
		dateCandidate:   regexp.MustCompile(dateCandidatePattern),
		date:            regexp.MustCompile(datePattern),
		email:           regexp.MustCompile(emailPattern),
		url:             regexp.MustCompile(urlPattern),
		currency:        regexp.MustCompile(currencyPattern),
		phone:           regexp.MustCompile(phonePattern),
	}
}

// IndicAcronyms returns runs of two or more dotted letter groups, in any script.
func (e *Extractor) IndicAcronyms(text string) []string {
	return e.indicAcronym.FindAllString(text, -1)
}

// Shortforms returns dotted capital sequences followed by consonant-only
// words, trimmed of surrounding whitespace. Both must stand as whole words,
// with letters of any script counting as word characters.
func (e *Extractor) Shortforms(text string) []Span {
	dotted := wordMatches(e.dottedShortform, text)
	bare := wordMatches(e.consonantWord, text)

	spans := make([]Span, 0, len(dotted)+len(bare))
	for _, match := range append(dotted, bare...) {
		spans = append(spans, Span{Text: strings.TrimSpace(match), Kind: SpanShortform})
	}

	return spans
}

// wordPattern matches a pattern only where it stands as a whole word. RE2's
// \b knows only ASCII word characters, so each match is checked again
// against letters of every script.
type wordPattern struct {
	search *regexp.Regexp
	whole  *regexp.Regexp
}

func newWordPattern(body string) wordPattern {
	return wordPattern{
		search: regexp.MustCompile(`\b` + body + `\b`),
		whole:  regexp.MustCompile(`^(?:` + body + `)$`),
	}
}

// wordMatches returns the matches of p in text. A match that runs into an
// accented or non-Latin letter is shortened until its end is a boundary, or
// dropped and searched for again one rune further on.
func wordMatches(p wordPattern, text string) []string {
	var matches []string

	for pos := 0; pos < len(text); {
		loc := p.search.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}

		start, end := pos+loc[0], pos+loc[1]

		end, ok := p.boundedEnd(text, start, end)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size

			continue
		}

		matches = append(matches, text[start:end])
		pos = end
	}

	return matches
}

func (p wordPattern) boundedEnd(text string, start, end int) (int, bool) {
	if !isWordBoundary(text, start) {
		return 0, false
	}

	if isWordBoundary(text, end) {
		return end, true
	}

	for end > start {
		_, size := utf8.DecodeLastRuneInString(text[start:end])
		end -= size

		if end > start && isWordBoundary(text, end) && p.whole.MatchString(text[start:end]) {
			return end, true
		}
	}

	return 0, false
}

// isWordBoundary reports whether a word character sits on exactly one side of
// byte offset i.
func isWordBoundary(text string, i int) bool {
	before, after := false, false

	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}

	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}

	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// replaceFirstWord replaces the first occurrence of old that stands as a
// whole word. Text without such an occurrence is returned unchanged.
func replaceFirstWord(text, old, replacement string) string {
	if old == "" {
		return text
	}

	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], old)
		if idx < 0 {
			break
		}

		start := offset + idx
		end := start + len(old)

		if wordEdge(text, old, start, true) && wordEdge(text, old, end, false) {
			return text[:start] + replacement + text[end:]
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return text
}

// wordEdge reports whether old may start (or end) at offset i: an edge made
// of a word character must not touch another word character.
func wordEdge(text, old string, i int, leading bool) bool {
	var edge rune
	if leading {
		edge, _ = utf8.DecodeRuneInString(old)
	} else {
		edge, _ = utf8.DecodeLastRuneInString(old)
	}

	if !isWordRune(edge) {
		return true
	}

	return isWordBoundary(text, i)
}

// Decimals returns numerals with a fractional part.
func (e *Extractor) Decimals(text string) []Span {
	return spansOf(e.decimal.FindAllString(text, -1), SpanDecimal)
}

// Numbers returns numerals with an optional fractional part.
func (e *Extractor) Numbers(text string) []Span {
	return spansOf(e.number.FindAllString(text, -1), SpanNumber)
}

// Dates runs the two-pass date extraction. The loose pass collects runs with
// two separators and drops anything longer than a date can be; the strict
// pass then matches real date shapes over the survivors.
func (e *Extractor) Dates(text string) []Span {
	candidates := e.dateCandidate.FindAllString(text, -1)

	survivors := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.ReplaceAll(candidate, dateCandidateWhitespace, "")
		if len([]rune(candidate)) > maxDateCandidateLength {
			continue
		}

		survivors = append(survivors, candidate)
	}

	joined := strings.Join(survivors, dateCandidateSeparator)

	return spansOf(e.date.FindAllString(joined, -1), SpanDate)
}

// EmailsAndURLs returns email addresses followed by URLs.
func (e *Extractor) EmailsAndURLs(text string) []Span {
	spans := spansOf(e.email.FindAllString(text, -1), SpanEmailOrURL)

	for _, groups := range e.url.FindAllStringSubmatch(text, -1) {
		for _, group := range groups[1:] {
			if group != "" {
				spans = append(spans, Span{Text: group, Kind: SpanEmailOrURL})

				break
			}
		}
	}

	return spans
}

// Currencies returns rupee amounts.
func (e *Extractor) Currencies(text string) []Span {
	return spansOf(e.currency.FindAllString(text, -1), SpanCurrency)
}

// Phones returns phone-number shaped digit runs.
func (e *Extractor) Phones(text string) []Span {
	return spansOf(e.phone.FindAllString(text, -1), SpanPhone)
}

// CollapseStops replaces runs of periods with a single period.
func (e *Extractor) CollapseStops(text string) string {
	return e.multipleStops.ReplaceAllString(text, ".")
}

// CollapseSpaces replaces runs of spaces with a single space.
func (e *Extractor) CollapseSpaces(text string) string {
	return e.multipleSpaces.ReplaceAllString(text, " ")
}

func spansOf(matches []string, kind SpanKind) []Span {
	spans := make([]Span, 0, len(matches))
	for _, match := range matches {
		if match == "" {
			continue
		}

		spans = append(spans, Span{Text: match, Kind: kind})
	}

	return spans
}
