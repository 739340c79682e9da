package fallback

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	embedder := NewEmbedder(DefaultDimension)

	first, err := embedder.EmbedText(ctx, "hello")
	require.NoError(t, err)

	second, err := embedder.EmbedText(ctx, "hello")
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical text must yield identical vectors")

	// A fresh embedder instance must agree too; nothing is cached per instance.
	other, err := NewEmbedder(DefaultDimension).EmbedText(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, first, other)
}

func TestEmbedder_Dimension(t *testing.T) {
	ctx := context.Background()

	t.Run("default dimension", func(t *testing.T) {
		vector, err := NewEmbedder(DefaultDimension).EmbedText(ctx, "some text")
		require.NoError(t, err)
		assert.Len(t, vector, DefaultDimension)
	})

	t.Run("custom dimension", func(t *testing.T) {
		vector, err := NewEmbedder(24).EmbedText(ctx, "some text")
		require.NoError(t, err)
		assert.Len(t, vector, 24)
	})

	t.Run("invalid dimension falls back to default", func(t *testing.T) {
		vector, err := NewEmbedder(0).EmbedText(ctx, "some text")
		require.NoError(t, err)
		assert.Len(t, vector, DefaultDimension)
	})
}

func TestEmbedder_Range(t *testing.T) {
	vector, err := NewEmbedder(DefaultDimension).EmbedText(context.Background(), "range check")
	require.NoError(t, err)

	for i, v := range vector {
		assert.GreaterOrEqual(t, v, float32(0), "component %d below range", i)
		assert.LessOrEqual(t, v, float32(1), "component %d above range", i)
	}
}

func TestEmbedder_DifferentTexts(t *testing.T) {
	ctx := context.Background()
	embedder := NewEmbedder(DefaultDimension)

	a, err := embedder.EmbedText(ctx, "Newton's laws")
	require.NoError(t, err)
	b, err := embedder.EmbedText(ctx, "Energy is conserved")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbedder_Batch(t *testing.T) {
	ctx := context.Background()
	embedder := NewEmbedder(DefaultDimension)

	texts := []string{"one", "two", "three"}
	vectors, err := embedder.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		single, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, vectors[i], "batch result %d disagrees with single call", i)
	}
}

func TestExtractor_SentenceSplit(t *testing.T) {
	ctx := context.Background()
	extractor := NewExtractor()

	concepts, err := extractor.ExtractConcepts(ctx, 1, "Newton's laws. Energy is conserved.")
	require.NoError(t, err)
	require.Len(t, concepts, 2)

	assert.Equal(t, "Newton's laws", concepts[0].Summary)
	assert.Equal(t, 0, concepts[0].Priority)
	assert.Equal(t, "Energy is conserved", concepts[1].Summary)
	assert.Equal(t, 1, concepts[1].Priority)

	for _, c := range concepts {
		assert.Empty(t, c.Vector, "fallback concepts defer embedding")
		assert.Contains(t, c.Title, c.Summary[:10])
	}
}

func TestExtractor_EmptyAndWhitespace(t *testing.T) {
	ctx := context.Background()
	extractor := NewExtractor()

	t.Run("empty text", func(t *testing.T) {
		concepts, err := extractor.ExtractConcepts(ctx, 1, "")
		require.NoError(t, err)
		assert.Empty(t, concepts)
	})

	t.Run("only periods and whitespace", func(t *testing.T) {
		concepts, err := extractor.ExtractConcepts(ctx, 1, " . .  . ")
		require.NoError(t, err)
		assert.Empty(t, concepts)
	})
}

func TestExtractor_LimitAndOrder(t *testing.T) {
	ctx := context.Background()
	extractor := NewExtractor()

	text := "One. Two. Three. Four. Five. Six. Seven."
	concepts, err := extractor.ExtractConcepts(ctx, 1, text)
	require.NoError(t, err)
	require.Len(t, concepts, maxConcepts)

	for i, c := range concepts {
		assert.Equal(t, i, c.Priority)
	}
	assert.Equal(t, "One", concepts[0].Summary)
	assert.Equal(t, "Five", concepts[4].Summary)
}

func TestExtractor_LongSentenceTitlePrefix(t *testing.T) {
	ctx := context.Background()
	extractor := NewExtractor()

	long := strings.Repeat("thermodynamics ", 10) // well past the prefix length
	concepts, err := extractor.ExtractConcepts(ctx, 1, long+".")
	require.NoError(t, err)
	require.Len(t, concepts, 1)

	// "Concept 1: " plus at most titlePrefixLen runes of the sentence.
	assert.LessOrEqual(t, len([]rune(concepts[0].Title)), len("Concept 1: ")+titlePrefixLen)
	assert.Equal(t, strings.TrimSpace(long), strings.TrimSpace(concepts[0].Summary))
}

func TestProvider(t *testing.T) {
	provider := NewProvider(DefaultDimension)

	assert.NotNil(t, provider.Embedder())
	assert.NotNil(t, provider.ConceptExtractor())
	assert.NoError(t, provider.Close())
}
