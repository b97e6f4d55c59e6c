// Package paragraph splits normalized text into length-bounded chunks for
// per-chunk synthesis.
package paragraph

import (
	"regexp"
	"strings"
)

const (
	// DefaultMaxLength is the chunk length used when none is configured.
	DefaultMaxLength = 512
	// DefaultDelimiter is the preferred split character.
	DefaultDelimiter = '.'

	fallbackDelimiter = ' '
)

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]`)

// Splitter holds a fixed delimiter and maximum chunk length.
type Splitter struct {
	Delimiter rune
	MaxLength int
}

// NewSplitter creates a Splitter with the default delimiter. A maxLength
// below one selects DefaultMaxLength.
func NewSplitter(maxLength int) *Splitter {
	return &Splitter{
		Delimiter: DefaultDelimiter,
		MaxLength: maxLength,
	}
}

// Split splits text with the splitter's delimiter and maximum length.
func (s *Splitter) Split(text string) []string {
	return Split(text, s.Delimiter, s.MaxLength)
}

// Split cuts text into chunks of at most maxLen characters, ending each chunk
// on the delimiter nearest to the window edge. When the delimiter does not
// occur in text a space is used instead; when neither occurs the text is
// returned whole.
//
// Chunks that contain no word characters are dropped, except for the final
// chunk, which is always kept so an appended terminator is not lost. A window
// without any delimiter is extended to the next delimiter, so such a chunk
// may exceed maxLen.
func Split(text string, delimiter rune, maxLen int) []string {
	if maxLen < 1 {
		maxLen = DefaultMaxLength
	}

	if !strings.ContainsRune(text, delimiter) {
		delimiter = fallbackDelimiter
	}

	if !strings.ContainsRune(text, delimiter) {
		return []string{text}
	}

	runes := []rune(text)

	var chunks []string

	for left := 0; left < len(runes); {
		if left+maxLen >= len(runes) {
			chunks = append(chunks, string(runes[left:]))

			break
		}

		right := cutPoint(runes, delimiter, left, left+maxLen-1)

		chunks = appendChunk(chunks, runes[left:right+1])
		left = right + 1
	}

	if len(chunks) == 0 {
		return []string{text}
	}

	return chunks
}

// cutPoint returns the index of the delimiter that ends the chunk starting at
// left, searching backward from edge.
func cutPoint(runes []rune, delimiter rune, left, edge int) int {
	right := edge
	for runes[right] != delimiter && right > left && right > 0 {
		right--
	}

	if runes[right] == delimiter {
		return right
	}

	for right = edge + 1; right < len(runes); right++ {
		if runes[right] == delimiter {
			return right
		}
	}

	return len(runes) - 1
}

func appendChunk(chunks []string, chunk []rune) []string {
	text := string(chunk)
	if nonWordPattern.ReplaceAllString(text, "") == "" {
		return chunks
	}

	return append(chunks, text)
}
