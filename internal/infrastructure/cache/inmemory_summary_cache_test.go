package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemorySummaryCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		value, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), value)
	})

	t.Run("missing key", func(t *testing.T) {
		c := NewInMemorySummaryCache()
		defer c.Close()

		_, ok, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entry is not returned", func(t *testing.T) {
		c := NewInMemorySummaryCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c := NewInMemorySummaryCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		c := NewInMemorySummaryCache()
		c.Close()
		c.Close()
	})
}
