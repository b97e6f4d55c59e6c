// Package textnorm turns raw multilingual text into a speakable form.
//
// Normalization is a fixed sequence of seven stages. Later stages rely on the
// earlier ones having removed ambiguity: decimals and dates must be rewritten
// before the cardinal stage reads every remaining digit run as an integer.
//
//  1. punctuation unification
//  2. shortform and acronym expansion
//  3. decimal normalization
//  4. punctuation normalization
//  5. date normalization
//  6. symbol, currency and phone expansion
//  7. cardinal number expansion
package textnorm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/book-expert/logger"
	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/book-expert/text-normalizer/internal/lexicon"
)

const (
	sourceLanguage = "en"
	decimalPoint   = "."
	decimalWord    = " point "
	groupSeparator = ","
	appendedStop   = " ."
	terminalPunct  = ".!?,:;"
	singleSpace    = " "
	pronounI       = "I"
	articleA       = "A"
)

// Error and log messages.
const (
	errFmtSpokenForm         = "failed to convert date %q to spoken form: %w"
	errFmtTranslateDate      = "failed to translate date %q to %s: %w"
	errNoTranslator          = "no translator configured"
	logFmtNumeralSkipped     = "Leaving numeral %q unexpanded for %s: %v"
	reasonFmtUnparsable      = "not an integer: %v"
	reasonFmtTranslateFailed = "translation failed: %v"
)

var errNoTranslatorConfigured = fmt.Errorf("%w: %s", core.ErrTranslationFailure, errNoTranslator)

var (
	// Stage 1 terminator variants: Devanagari danda, vertical bar, Meetei Mayek cheikhei.
	terminatorUnifier = strings.NewReplacer("।", ".", "|", ".", "꯫", ".")
	bracketReplacer   = strings.NewReplacer(
		"(", ",", ")", ",",
		"{", ",", "}", ",",
		"[", ",", "]", ",",
	)
)

// Normalizer implements core.TextNormalizer. It holds read-only state and is
// safe for concurrent use as long as its collaborators are.
type Normalizer struct {
	extractor  *Extractor
	symbols    *lexicon.SymbolTable
	translator core.Translator
	spoken     core.SpokenFormer
	log        *logger.Logger
}

// New creates a Normalizer. The translator may be nil when only languages
// that need no translation are served; calls that need it then fail with
// core.ErrTranslationFailure.
func New(translator core.Translator, spoken core.SpokenFormer, log *logger.Logger) *Normalizer {
	return &Normalizer{
		extractor:  NewExtractor(),
		symbols:    lexicon.Symbols(),
		translator: translator,
		spoken:     spoken,
		log:        log,
	}
}

// Normalize returns the speakable form of text for lang.
func (n *Normalizer) Normalize(ctx context.Context, text, lang string) (string, error) {
	result, err := n.NormalizeDetailed(ctx, text, lang)
	if err != nil {
		return "", err
	}

	return result.Text, nil
}

// NormalizeDetailed runs the pipeline and also reports the numerals the
// cardinal stage could not expand.
func (n *Normalizer) NormalizeDetailed(
	ctx context.Context,
	text, lang string,
) (*core.NormalizationResult, error) {
	language, err := lexicon.Lookup(lang)
	if err != nil {
		return nil, err
	}

	text = n.unifyPunctuation(text)
	if text == "" {
		return &core.NormalizationResult{Text: "", Skipped: nil}, nil
	}

	text = n.expandShortforms(text, language)
	text = n.normalizeDecimals(text)
	text = n.normalizePunctuation(text, language)

	text, err = n.convertDates(ctx, text, language)
	if err != nil {
		return nil, err
	}

	text = n.convertSymbols(text, language)

	text, skipped := n.convertNumbers(ctx, text, language)

	return &core.NormalizationResult{Text: text, Skipped: skipped}, nil
}

func (n *Normalizer) unifyPunctuation(text string) string {
	return strings.TrimSpace(terminatorUnifier.Replace(text))
}

// expandShortforms keeps acronyms from being read as separate sentences.
func (n *Normalizer) expandShortforms(text string, lang lexicon.Language) string {
	if lang.Code != sourceLanguage {
		for _, acronym := range n.extractor.IndicAcronyms(text) {
			text = strings.ReplaceAll(text, acronym, strings.ReplaceAll(acronym, decimalPoint, singleSpace))
		}

		return text
	}

	for _, shortform := range n.extractor.Shortforms(text) {
		if shortform.Text == pronounI || shortform.Text == articleA {
			continue
		}

		text = replaceFirstWord(text, shortform.Text, spellLetters(shortform.Text))
	}

	return text
}

func spellLetters(shortform string) string {
	spellings := make([]string, 0, len(shortform))

	for _, letter := range strings.ToLower(shortform) {
		spelling, ok := lexicon.Phonetic(letter)
		if ok {
			spellings = append(spellings, spelling)
		}
	}

	return strings.Join(spellings, singleSpace)
}

func (n *Normalizer) normalizeDecimals(text string) string {
	for _, decimal := range n.extractor.Decimals(text) {
		plain := strings.ReplaceAll(decimal.Text, groupSeparator, "")
		text = strings.Replace(text, decimal.Text, decimalSubstitution(plain), 1)
	}

	return text
}

// decimalSubstitution reads the fractional digits one by one:
// "12.345" becomes "12 point 3 4 5".
func decimalSubstitution(decimal string) string {
	parts := strings.Split(decimal, decimalPoint)

	var fraction strings.Builder
	for _, part := range parts[1:] {
		fraction.WriteString(spaceRunes(part))
	}

	return strings.TrimSpace(parts[0] + decimalWord + fraction.String())
}

func spaceRunes(s string) string {
	runes := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		runes = append(runes, string(r))
	}

	return strings.Join(runes, singleSpace)
}

func (n *Normalizer) normalizePunctuation(text string, lang lexicon.Language) string {
	text = n.extractor.CollapseStops(text)

	if lang.AppendTerminator {
		text = strings.ReplaceAll(text, string(lexicon.Danda), string(lexicon.Period))

		last, _ := utf8.DecodeLastRuneInString(text)
		if !strings.ContainsRune(terminalPunct, last) {
			text += appendedStop
		}
	} else {
		text = strings.ReplaceAll(text, string(lexicon.Period), string(lang.Terminator))
	}

	text = strings.ReplaceAll(text, "|", string(lexicon.Period))
	text = bracketReplacer.Replace(text)

	return strings.ReplaceAll(text, ";", ",")
}

func (n *Normalizer) convertDates(ctx context.Context, text string, lang lexicon.Language) (string, error) {
	for _, date := range n.extractor.Dates(text) {
		spoken, err := n.spoken.SpokenForm(ctx, ASCIIDigits(date.Text))
		if err != nil {
			return "", fmt.Errorf(errFmtSpokenForm, date.Text, err)
		}

		if lang.TranslateDates {
			spoken, err = n.translate(ctx, spoken, lang.Code)
			if err != nil {
				return "", fmt.Errorf(errFmtTranslateDate, date.Text, lang.Code, err)
			}
		}

		text = strings.ReplaceAll(text, date.Text, spoken)
	}

	return text, nil
}

func (n *Normalizer) convertSymbols(text string, lang lexicon.Language) string {
	for _, item := range n.extractor.EmailsAndURLs(text) {
		text = strings.ReplaceAll(text, item.Text, n.localizeSymbols(item.Text, lang.Code))
	}

	// The amount is read before the currency word.
	for _, item := range n.extractor.Currencies(text) {
		moved := strings.ReplaceAll(item.Text, "₹", "") + "₹"
		text = strings.ReplaceAll(text, item.Text, n.localizeSymbols(moved, lang.Code))
	}

	for _, item := range n.extractor.Phones(text) {
		localized := n.localizeSymbols(strings.ReplaceAll(item.Text, "-", singleSpace), lang.Code)
		text = strings.ReplaceAll(text, item.Text, spellDigits(localized))
	}

	percent, _ := n.symbols.Word(lexicon.PercentSymbol, lang.Code)

	return strings.ReplaceAll(text, lexicon.PercentSymbol, percent)
}

func (n *Normalizer) localizeSymbols(item, lang string) string {
	for _, symbol := range n.symbols.Ordered() {
		item = strings.ReplaceAll(item, symbol.Symbol, singleSpace+symbol.Words[lang]+singleSpace)
	}

	return item
}

// spellDigits reads every digit on its own, in any script, while keeping
// localized symbol words whole.
func spellDigits(phone string) string {
	fields := strings.Fields(phone)
	for i, field := range fields {
		if isDigits(field) {
			fields[i] = spaceRunes(field)
		}
	}

	return strings.Join(fields, singleSpace)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return s != ""
}

// convertNumbers expands the remaining integers. A failed translation leaves
// the numeral in place and is reported instead of aborting the call.
func (n *Normalizer) convertNumbers(
	ctx context.Context,
	text string,
	lang lexicon.Language,
) (string, []core.SkippedNumeral) {
	var skipped []core.SkippedNumeral

	for _, numeral := range n.extractor.Numbers(text) {
		words, err := n.numeralToWords(ctx, numeral.Text, lang)
		if err != nil {
			n.log.Warn(logFmtNumeralSkipped, numeral.Text, lang.Code, err)

			skipped = append(skipped, core.SkippedNumeral{Literal: numeral.Text, Reason: skipReason(err)})

			continue
		}

		text = strings.Replace(text, numeral.Text, singleSpace+words+singleSpace, 1)
	}

	return n.extractor.CollapseSpaces(text), skipped
}

var errUnparsableNumeral = errors.New("unparsable numeral")

func (n *Normalizer) numeralToWords(ctx context.Context, numeral string, lang lexicon.Language) (string, error) {
	value, err := strconv.ParseInt(ASCIIDigits(strings.ReplaceAll(numeral, groupSeparator, "")), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUnparsableNumeral, err)
	}

	if lang.NativeCardinals {
		return CardinalToWords(value, lang.Code)
	}

	english, err := CardinalToWords(value, sourceLanguage)
	if err != nil {
		return "", err
	}

	return n.translate(ctx, english, lang.Code)
}

func skipReason(err error) string {
	if errors.Is(err, errUnparsableNumeral) {
		return fmt.Sprintf(reasonFmtUnparsable, err)
	}

	return fmt.Sprintf(reasonFmtTranslateFailed, err)
}

func (n *Normalizer) translate(ctx context.Context, text, lang string) (string, error) {
	if n.translator == nil {
		return "", errNoTranslatorConfigured
	}

	translated, err := n.translator.Translate(ctx, text, sourceLanguage, lang)
	if err != nil {
		if !errors.Is(err, core.ErrTranslationFailure) {
			err = fmt.Errorf("%w: %w", core.ErrTranslationFailure, err)
		}

		return "", err
	}

	return translated, nil
}
