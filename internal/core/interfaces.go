// Package core defines the contracts shared by the text normalization service.
package core

import "context"

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Translator translates a phrase between two language codes.
// Implementations must wrap failures with ErrTranslationFailure.
type Translator interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
}

// SpokenFormer converts a written numeric form (such as a date) into its
// English spoken form.
type SpokenFormer interface {
	SpokenForm(ctx context.Context, text string) (string, error)
}

// SkippedNumeral records a numeral that number expansion left untouched.
type SkippedNumeral struct {
	Literal string `json:"literal"`
	Reason  string `json:"reason"`
}

// NormalizationResult is the outcome of a single normalization call.
type NormalizationResult struct {
	Text    string
	Skipped []SkippedNumeral
}

// TextNormalizer turns raw text into its speakable form for a language.
type TextNormalizer interface {
	NormalizeDetailed(ctx context.Context, text, lang string) (*NormalizationResult, error)
}
