package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyreel/studyreel/core"
)

// scriptedEmbedder is a test double whose behavior is injected per test.
type scriptedEmbedder struct {
	embedTextFunc  func(ctx context.Context, text string) ([]float32, error)
	embedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)
	calls          int
}

func (s *scriptedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.embedTextFunc != nil {
		return s.embedTextFunc(ctx, text)
	}
	return []float32{1}, nil
}

func (s *scriptedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.embedTextsFunc != nil {
		return s.embedTextsFunc(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1}
	}
	return out, nil
}

// scriptedExtractor is a test double for ConceptExtractor.
type scriptedExtractor struct {
	extractFunc func(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error)
	calls       int
}

func (s *scriptedExtractor) ExtractConcepts(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error) {
	s.calls++
	if s.extractFunc != nil {
		return s.extractFunc(ctx, materialID, text)
	}
	return []ExtractedConcept{{Title: "stub", Priority: 0}}, nil
}

func TestNewFailoverEmbedder_RequiresFallback(t *testing.T) {
	_, err := NewFailoverEmbedder(&scriptedEmbedder{}, nil, time.Second, nil)
	assert.Equal(t, ErrFallbackEmbedderRequired, err)
}

func TestFailoverEmbedder_NilPrimaryUsesFallback(t *testing.T) {
	fallback := &scriptedEmbedder{
		embedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{0.5}, nil
		},
	}

	embedder, err := NewFailoverEmbedder(nil, fallback, time.Second, nil)
	require.NoError(t, err)

	vector, err := embedder.EmbedText(context.Background(), "offline")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, vector)
	assert.Equal(t, 1, fallback.calls)
}

func TestFailoverEmbedder_PrimarySuccess(t *testing.T) {
	primary := &scriptedEmbedder{
		embedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{0.9, 0.8}, nil
		},
	}
	fallback := &scriptedEmbedder{}

	embedder, err := NewFailoverEmbedder(primary, fallback, time.Second, nil)
	require.NoError(t, err)

	vector, err := embedder.EmbedText(context.Background(), "online")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9, 0.8}, vector, "primary result passed through unmodified")
	assert.Zero(t, fallback.calls)
}

func TestFailoverEmbedder_PrimaryErrorDegrades(t *testing.T) {
	primary := &scriptedEmbedder{
		embedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		},
	}
	fallback := &scriptedEmbedder{
		embedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{0.25}, nil
		},
	}

	embedder, err := NewFailoverEmbedder(primary, fallback, time.Second, nil)
	require.NoError(t, err)

	vector, err := embedder.EmbedText(context.Background(), "degraded")
	require.NoError(t, err, "backend failures must not escape")
	assert.Equal(t, []float32{0.25}, vector)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFailoverEmbedder_PrimaryTimeoutDegrades(t *testing.T) {
	primary := &scriptedEmbedder{
		embedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	fallback := &scriptedEmbedder{}

	embedder, err := NewFailoverEmbedder(primary, fallback, 10*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = embedder.EmbedText(context.Background(), "slow backend")
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
}

func TestFailoverEmbedder_BatchShortResultDegrades(t *testing.T) {
	primary := &scriptedEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{0.1}}, nil // fewer vectors than inputs
		},
	}
	fallback := &scriptedEmbedder{}

	embedder, err := NewFailoverEmbedder(primary, fallback, time.Second, nil)
	require.NoError(t, err)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 1, fallback.calls)
}

func TestNewFailoverExtractor_RequiresFallback(t *testing.T) {
	_, err := NewFailoverExtractor(&scriptedExtractor{}, nil, time.Second, nil)
	assert.Equal(t, ErrFallbackExtractorRequired, err)
}

func TestFailoverExtractor_PrimaryErrorDegrades(t *testing.T) {
	primary := &scriptedExtractor{
		extractFunc: func(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error) {
			return nil, errors.New("503 service unavailable")
		},
	}
	fallback := &scriptedExtractor{
		extractFunc: func(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error) {
			return []ExtractedConcept{
				{Title: "Concept 1: local", Summary: "local", Priority: 0},
			}, nil
		},
	}

	extractor, err := NewFailoverExtractor(primary, fallback, time.Second, nil)
	require.NoError(t, err)

	concepts, err := extractor.ExtractConcepts(context.Background(), 3, "some text")
	require.NoError(t, err)
	require.Len(t, concepts, 1)
	assert.Equal(t, "Concept 1: local", concepts[0].Title)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFailoverExtractor_PrimarySuccess(t *testing.T) {
	primary := &scriptedExtractor{}
	fallback := &scriptedExtractor{}

	extractor, err := NewFailoverExtractor(primary, fallback, time.Second, nil)
	require.NoError(t, err)

	concepts, err := extractor.ExtractConcepts(context.Background(), 3, "some text")
	require.NoError(t, err)
	assert.Len(t, concepts, 1)
	assert.Zero(t, fallback.calls)
}
