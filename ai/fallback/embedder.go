package fallback

import (
	"context"

	"github.com/go-crypt/x/blake2b"
	"github.com/studyreel/studyreel/ai"
)

// DefaultDimension is the length of deterministic pseudo-embeddings.
const DefaultDimension = 16

// Embedder implements ai.Embedder with deterministic pseudo-embeddings.
// Each vector is derived from a cryptographic digest of the text, so
// identical text always yields an identical vector across calls and across
// process restarts. No network, no state, never fails.
type Embedder struct {
	dimension int
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a deterministic embedder producing vectors of the
// given length. Lengths outside [1, 64] fall back to DefaultDimension.
func NewEmbedder(dimension int) *Embedder {
	if dimension < 1 || dimension > 64 {
		dimension = DefaultDimension
	}
	return &Embedder{dimension: dimension}
}

// EmbedText returns the pseudo-embedding for a single text string.
func (e *Embedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	return pseudoEmbedding(text, e.dimension), nil
}

// EmbedTexts returns pseudo-embeddings for multiple texts, in input order.
func (e *Embedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = pseudoEmbedding(text, e.dimension)
	}
	return vectors, nil
}

// pseudoEmbedding maps the first dimension bytes of a BLAKE2b digest of the
// UTF-8 text to floats in [0,1] (byte / 255).
func pseudoEmbedding(text string, dimension int) []float32 {
	h, _ := blake2b.New(dimension, nil)
	h.Write([]byte(text))
	digest := h.Sum(nil)

	vector := make([]float32, dimension)
	for i, b := range digest[:dimension] {
		vector[i] = float32(b) / 255.0
	}
	return vector
}
