// Package lexicon holds the immutable lexical resources used by the text
// normalizer: localized symbol words, the English letter spellings and the
// per-language configuration record.
//
// All resources are built once on first use and are safe for concurrent
// read-only access.
package lexicon

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// PercentSymbol is localized everywhere in the text, not only inside
// emails and URLs.
const PercentSymbol = "%"

//go:embed symbols.toml
var symbolsTOML []byte

// Symbol is a symbol string and its spoken word per language code.
type Symbol struct {
	Symbol string            `toml:"symbol"`
	Words  map[string]string `toml:"words"`
}

type symbolFile struct {
	Symbols []Symbol `toml:"symbols"`
}

// SymbolTable is the ordered symbol-to-word table.
type SymbolTable struct {
	ordered []Symbol
	index   map[string]int
}

var defaultSymbols = sync.OnceValue(func() *SymbolTable {
	table, err := ParseSymbols(symbolsTOML)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded symbol table is invalid: %v", err))
	}

	return table
})

// Symbols returns the process-wide symbol table.
func Symbols() *SymbolTable {
	return defaultSymbols()
}

// ParseSymbols decodes a TOML symbol table. Every entry must define a word
// for every supported language.
func ParseSymbols(data []byte) (*SymbolTable, error) {
	var file symbolFile

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode symbol table: %w", err)
	}

	table := &SymbolTable{
		ordered: file.Symbols,
		index:   make(map[string]int, len(file.Symbols)),
	}

	for i, entry := range file.Symbols {
		if entry.Symbol == "" {
			return nil, fmt.Errorf("symbol entry %d has an empty symbol", i)
		}

		for _, code := range Codes() {
			if entry.Words[code] == "" {
				return nil, fmt.Errorf("symbol %q has no word for language %q", entry.Symbol, code)
			}
		}

		table.index[entry.Symbol] = i
	}

	return table, nil
}

// Ordered returns the symbols in application order.
func (t *SymbolTable) Ordered() []Symbol {
	return t.ordered
}

// Word returns the spoken word for symbol in lang.
func (t *SymbolTable) Word(symbol, lang string) (string, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return "", false
	}

	word, ok := t.ordered[i].Words[lang]

	return word, ok
}

// alphabet maps lowercase Latin letters to the spelling used when an acronym
// is read letter by letter.
var alphabet = map[rune]string{
	'a': "aey",
	'b': "bee",
	'c': "see",
	'd': "dee",
	'e': "eee",
	'f': "eff",
	'g': "jee",
	'h': "ech",
	'i': "aai",
	'j': "jay",
	'k': "kay",
	'l': "ell",
	'm': "em",
	'n': "en",
	'o': "oh",
	'p': "pee",
	'q': "kyuu",
	'r': "aar",
	's': "es",
	't': "tea",
	'u': "you",
	'v': "vee",
	'w': "doubleu",
	'x': "ex",
	'y': "why",
	'z': "zedd",
}

// Phonetic returns the spelling of a lowercase Latin letter.
func Phonetic(letter rune) (string, bool) {
	spelling, ok := alphabet[letter]

	return spelling, ok
}
