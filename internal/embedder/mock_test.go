package embedder

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_CreateEmbedding(t *testing.T) {
	ctx := context.Background()

	t.Run("deterministic for identical input", func(t *testing.T) {
		c := NewMockClient(384)

		first, err := c.CreateEmbedding(ctx, "the quick brown fox")
		require.NoError(t, err)

		second, err := c.CreateEmbedding(ctx, "the quick brown fox")
		require.NoError(t, err)

		require.Len(t, second, len(first))
		for i := range first {
			assert.InDelta(t, first[i], second[i], 1e-6)
		}
	})

	t.Run("output has unit L2 norm", func(t *testing.T) {
		c := NewMockClient(384)

		vec, err := c.CreateEmbedding(ctx, "semantic search for blog posts")
		require.NoError(t, err)
		require.Len(t, vec, 384)

		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}

		assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
	})

	t.Run("different texts produce different vectors", func(t *testing.T) {
		c := NewMockClient(64)

		a, err := c.CreateEmbedding(ctx, "apples")
		require.NoError(t, err)

		b, err := c.CreateEmbedding(ctx, "oranges")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("empty text returns error", func(t *testing.T) {
		c := NewMockClient(64)

		_, err := c.CreateEmbedding(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}

func TestNew(t *testing.T) {
	t.Run("mock provider", func(t *testing.T) {
		c, err := New("mock", "", "", 384)
		require.NoError(t, err)
		assert.IsType(t, &MockClient{}, c)
	})

	t.Run("ollama provider", func(t *testing.T) {
		c, err := New("ollama", "http://localhost:11434", "all-minilm", 384)
		require.NoError(t, err)
		assert.IsType(t, &OllamaClient{}, c)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New("carrier-pigeon", "", "", 384)
		assert.Error(t, err)
	})
}
