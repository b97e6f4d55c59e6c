package textnorm

import (
	"fmt"
	"strings"

	"github.com/book-expert/text-normalizer/internal/core"
)

// Place values of the Indian numbering system.
const (
	numberBaseTen      = 10
	numberBaseTwenty   = 20
	numberBaseHundred  = 100
	numberBaseThousand = 1000
	numberBaseLakh     = 100000
	numberBaseCrore    = 10000000
)

// cardinalSpeller holds the words a language needs to read an integer in the
// Indian numbering system.
type cardinalSpeller struct {
	belowHundred func(num int64) string
	zero         string
	minus        string
	hundred      string
	thousand     string
	lakh         string
	crore        string
}

var cardinalSpellers = map[string]*cardinalSpeller{
	"en": newEnglishSpeller(),
	"hi": newHindiSpeller(),
}

// CardinalToWords converts n into words for lang. Only languages with a
// native speller are accepted.
func CardinalToWords(n int64, lang string) (string, error) {
	speller, ok := cardinalSpellers[lang]
	if !ok {
		return "", fmt.Errorf("%w: no native cardinals for %q", core.ErrUnsupportedLanguage, lang)
	}

	return speller.spell(n), nil
}

func (s *cardinalSpeller) spell(num int64) string {
	if num == 0 {
		return s.zero
	}

	if num < 0 {
		return s.minus + " " + s.spellPositive(-num)
	}

	return s.spellPositive(num)
}

func (s *cardinalSpeller) spellPositive(num int64) string {
	var parts []string

	if crores := num / numberBaseCrore; crores > 0 {
		parts = append(parts, s.spellPositive(crores)+" "+s.crore)
		num %= numberBaseCrore
	}

	if lakhs := num / numberBaseLakh; lakhs > 0 {
		parts = append(parts, s.belowHundred(lakhs)+" "+s.lakh)
		num %= numberBaseLakh
	}

	if thousands := num / numberBaseThousand; thousands > 0 {
		parts = append(parts, s.belowHundred(thousands)+" "+s.thousand)
		num %= numberBaseThousand
	}

	if hundreds := num / numberBaseHundred; hundreds > 0 {
		parts = append(parts, s.belowHundred(hundreds)+" "+s.hundred)
		num %= numberBaseHundred
	}

	if num > 0 {
		parts = append(parts, s.belowHundred(num))
	}

	return strings.Join(parts, " ")
}

func newEnglishSpeller() *cardinalSpeller {
	ones := []string{
		"", "one", "two", "three", "four", "five",
		"six", "seven", "eight", "nine",
	}
	teens := []string{
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tens := []string{
		"", "", "twenty", "thirty", "forty", "fifty",
		"sixty", "seventy", "eighty", "ninety",
	}

	return &cardinalSpeller{
		belowHundred: func(num int64) string {
			switch {
			case num < numberBaseTen:
				return ones[num]
			case num < numberBaseTwenty:
				return teens[num-numberBaseTen]
			case num%numberBaseTen == 0:
				return tens[num/numberBaseTen]
			default:
				return tens[num/numberBaseTen] + " " + ones[num%numberBaseTen]
			}
		},
		zero:     "zero",
		minus:    "minus",
		hundred:  "hundred",
		thousand: "thousand",
		lakh:     "lakh",
		crore:    "crore",
	}
}

// Hindi has an irregular word for every number below one hundred.
var hindiBelowHundred = [numberBaseHundred]string{
	"", "एक", "दो", "तीन", "चार", "पाँच", "छह", "सात", "आठ", "नौ",
	"दस", "ग्यारह", "बारह", "तेरह", "चौदह", "पंद्रह", "सोलह", "सत्रह", "अठारह", "उन्नीस",
	"बीस", "इक्कीस", "बाईस", "तेईस", "चौबीस", "पच्चीस", "छब्बीस", "सत्ताईस", "अट्ठाईस", "उनतीस",
	"तीस", "इकतीस", "बत्तीस", "तैंतीस", "चौंतीस", "पैंतीस", "छत्तीस", "सैंतीस", "अड़तीस", "उनतालीस",
	"चालीस", "इकतालीस", "बयालीस", "तैंतालीस", "चवालीस", "पैंतालीस", "छियालीस", "सैंतालीस", "अड़तालीस", "उनचास",
	"पचास", "इक्यावन", "बावन", "तिरपन", "चौवन", "पचपन", "छप्पन", "सत्तावन", "अट्ठावन", "उनसठ",
	"साठ", "इकसठ", "बासठ", "तिरसठ", "चौंसठ", "पैंसठ", "छियासठ", "सड़सठ", "अड़सठ", "उनहत्तर",
	"सत्तर", "इकहत्तर", "बहत्तर", "तिहत्तर", "चौहत्तर", "पचहत्तर", "छिहत्तर", "सतहत्तर", "अठहत्तर", "उन्यासी",
	"अस्सी", "इक्यासी", "बयासी", "तिरासी", "चौरासी", "पचासी", "छियासी", "सत्तासी", "अट्ठासी", "नवासी",
	"नब्बे", "इक्यानबे", "बानबे", "तिरानबे", "चौरानबे", "पंचानबे", "छियानबे", "सत्तानबे", "अट्ठानबे", "निन्यानबे",
}

func newHindiSpeller() *cardinalSpeller {
	return &cardinalSpeller{
		belowHundred: func(num int64) string {
			return hindiBelowHundred[num]
		},
		zero:     "शून्य",
		minus:    "ऋण",
		hundred:  "सौ",
		thousand: "हज़ार",
		lakh:     "लाख",
		crore:    "करोड़",
	}
}
