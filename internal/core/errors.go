package core

import "errors"

var (
	// ErrUnsupportedLanguage indicates a language code outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrTranslationFailure indicates that the external translator failed.
	ErrTranslationFailure = errors.New("translation failure")
)
