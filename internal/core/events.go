package core

import "github.com/book-expert/events"

// Failure codes carried by NormalizationFailedEvent.
const (
	FailureUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	FailureTranslation         = "TRANSLATION_FAILURE"
	FailureInvalidRequest      = "INVALID_REQUEST"
	FailureInternal            = "INTERNAL"
)

// NormalizationRequestedEvent asks the worker to normalize and chunk the text
// stored under TextKey. A zero MaxChunkLength selects the configured default.
type NormalizationRequestedEvent struct {
	Header         events.EventHeader `json:"header"`
	TextKey        string             `json:"text_key"`
	Language       string             `json:"language"`
	MaxChunkLength int                `json:"max_chunk_length,omitempty"`
}

// TextNormalizedEvent is the reply to a successful job. ChunkKeys lists the
// uploaded chunk objects in reading order.
type TextNormalizedEvent struct {
	Header     events.EventHeader `json:"header"`
	Language   string             `json:"language"`
	ChunkKeys  []string           `json:"chunk_keys"`
	ChunkCount int                `json:"chunk_count"`
	Skipped    []SkippedNumeral   `json:"skipped,omitempty"`
}

// NormalizationFailedEvent is the reply to a job that could not be completed.
type NormalizationFailedEvent struct {
	Header events.EventHeader `json:"header"`
	Code   string             `json:"code"`
	Reason string             `json:"reason"`
}
