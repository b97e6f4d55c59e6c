package lexicon

import (
	"fmt"
	"sort"

	"github.com/book-expert/text-normalizer/internal/core"
)

// Sentence terminators.
const (
	Period = '.'
	Danda  = '।'
)

// Language is the per-language behavior of the normalizer.
type Language struct {
	Code string
	// Terminator is the sentence terminator the language is spoken with.
	Terminator rune
	// AppendTerminator appends " ." to text lacking terminal punctuation.
	AppendTerminator bool
	// TranslateDates sends the English spoken date through the translator.
	TranslateDates bool
	// NativeCardinals means numbers are converted to words without translation.
	NativeCardinals bool
}

func latinTerminated(code string) Language {
	return Language{
		Code:             code,
		Terminator:       Period,
		AppendTerminator: true,
		TranslateDates:   true,
		NativeCardinals:  false,
	}
}

// brx has no date translation resource; the English spoken date is kept.
var languages = map[string]Language{
	"as": latinTerminated("as"),
	"bn": latinTerminated("bn"),
	"brx": {
		Code:             "brx",
		Terminator:       Danda,
		AppendTerminator: false,
		TranslateDates:   false,
		NativeCardinals:  false,
	},
	"en": {
		Code:             "en",
		Terminator:       Period,
		AppendTerminator: true,
		TranslateDates:   false,
		NativeCardinals:  true,
	},
	"gu": latinTerminated("gu"),
	"hi": {
		Code:             "hi",
		Terminator:       Period,
		AppendTerminator: true,
		TranslateDates:   true,
		NativeCardinals:  true,
	},
	"kn":  latinTerminated("kn"),
	"ml":  latinTerminated("ml"),
	"mni": latinTerminated("mni"),
	"mr":  latinTerminated("mr"),
	"or": {
		Code:             "or",
		Terminator:       Danda,
		AppendTerminator: false,
		TranslateDates:   true,
		NativeCardinals:  false,
	},
	"pa":  latinTerminated("pa"),
	"raj": latinTerminated("raj"),
	"ta":  latinTerminated("ta"),
	"te":  latinTerminated("te"),
}

// Lookup returns the configuration record for code.
func Lookup(code string) (Language, error) {
	lang, ok := languages[code]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", core.ErrUnsupportedLanguage, code)
	}

	return lang, nil
}

// Codes returns the supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}
