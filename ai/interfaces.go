package ai

import (
	"context"

	"github.com/studyreel/studyreel/core"
)

// Embedder generates vector embeddings from text for semantic similarity matching.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ConceptExtractor derives an ordered sequence of concepts from a material's text.
// Implementations must be thread-safe for concurrent use.
type ConceptExtractor interface {
	// ExtractConcepts analyzes text and returns concept candidates in priority
	// order (Priority == positional index, zero-based). A concept's Vector may
	// be empty; the pipeline computes it later via an Embedder.
	// Returns an empty slice if no concepts are found.
	// Returns an error if extraction fails.
	ExtractConcepts(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error)
}

// ExtractedConcept is a concept candidate produced by a ConceptExtractor,
// before it is persisted as a core.Concept.
type ExtractedConcept struct {
	// Title is a short label for the concept.
	Title string

	// Summary is the full sentence or passage the concept was derived from.
	Summary string

	// Priority is the zero-based position of the concept in the source text.
	Priority int

	// Vector is an optional embedding supplied by the backend.
	// Empty means deferred: the pipeline embeds the summary instead.
	Vector []float32
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and ConceptExtractor instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ConceptExtractor returns the concept extraction service.
	// The returned ConceptExtractor is safe for concurrent use.
	ConceptExtractor() ConceptExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
