package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allstories/studiokit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("get and put", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)

		// Touch "a" so "b" becomes the eviction candidate.
		_, _ = c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("put replaces existing value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("a", 10)

		v, _ := c.Get("a")
		assert.Equal(t, 10, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)

		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](4)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Clear()

		assert.Equal(t, 0, c.Len())
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}
