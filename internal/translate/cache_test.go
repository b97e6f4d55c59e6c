package translate_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/book-expert/text-normalizer/internal/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

type countingTranslator struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (c *countingTranslator) Translate(_ context.Context, text, _, toLang string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++

	if c.fail {
		return "", errUpstream
	}

	return toLang + ":" + text, nil
}

func TestCached_Translate_ReusesResults(t *testing.T) {
	t.Parallel()

	upstream := &countingTranslator{}

	cached, err := translate.NewCached(upstream, 8)
	require.NoError(t, err)

	for range 3 {
		result, err := cached.Translate(context.Background(), "forty two", "en", "ta")
		require.NoError(t, err)
		assert.Equal(t, "ta:forty two", result)
	}

	result, err := cached.Translate(context.Background(), "forty two", "en", "te")
	require.NoError(t, err)
	assert.Equal(t, "te:forty two", result)

	assert.Equal(t, 2, upstream.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCached_Translate_FailuresAreNotCached(t *testing.T) {
	t.Parallel()

	upstream := &countingTranslator{fail: true}

	cached, err := translate.NewCached(upstream, 8)
	require.NoError(t, err)

	for range 2 {
		_, err := cached.Translate(context.Background(), "seven", "en", "bn")
		require.ErrorIs(t, err, errUpstream)
	}

	assert.Equal(t, 2, upstream.calls)
	assert.Zero(t, cached.Len())
}

func TestCached_Translate_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	upstream := &countingTranslator{}

	cached, err := translate.NewCached(upstream, 2)
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three", "one"} {
		_, err := cached.Translate(context.Background(), text, "en", "mr")
		require.NoError(t, err)
	}

	assert.Equal(t, 4, upstream.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestNewCached_DefaultSize(t *testing.T) {
	t.Parallel()

	cached, err := translate.NewCached(&countingTranslator{}, 0)
	require.NoError(t, err)
	assert.Zero(t, cached.Len())
}
