package translate

import (
	"context"
	"fmt"

	"github.com/book-expert/text-normalizer/internal/core"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of translations kept when none is configured.
const DefaultCacheSize = 4096

type cacheKey struct {
	text     string
	fromLang string
	toLang   string
}

// Cached is a core.Translator that remembers successful translations.
// Failures are never cached. It is safe for concurrent use.
type Cached struct {
	next  core.Translator
	cache *lru.Cache[cacheKey, string]
}

// NewCached wraps next with an LRU cache of size entries. A size below one
// selects DefaultCacheSize.
func NewCached(next core.Translator, size int) (*Cached, error) {
	if size < 1 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation cache: %w", err)
	}

	return &Cached{next: next, cache: cache}, nil
}

// Translate returns the cached translation or asks the wrapped translator.
func (c *Cached) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	key := cacheKey{text: text, fromLang: fromLang, toLang: toLang}

	translated, ok := c.cache.Get(key)
	if ok {
		return translated, nil
	}

	translated, err := c.next.Translate(ctx, text, fromLang, toLang)
	if err != nil {
		return "", err
	}

	c.cache.Add(key, translated)

	return translated, nil
}

// Len returns the number of cached translations.
func (c *Cached) Len() int {
	return c.cache.Len()
}
