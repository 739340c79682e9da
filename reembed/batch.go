package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

// ChunkBatchProcessor handles embedding generation for batches of transcript chunks.
type ChunkBatchProcessor struct {
	videos         storage.VideoRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewChunkBatchProcessor creates a new chunk batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewChunkBatchProcessor(videos storage.VideoRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *ChunkBatchProcessor {
	return &ChunkBatchProcessor{
		videos:         videos,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of chunks and updates them in the database.
// Vectors are normalized after embedding so cosine scores stay comparable across models.
func (bp *ChunkBatchProcessor) Process(ctx context.Context, chunks []*core.TranscriptChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := embedWithRetry(ctx, bp.embedder, texts, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return err
	}

	for i := range chunks {
		chunks[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.videos.UpdateChunks(ctx, chunks...)
	if err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	return nil
}

// ConceptBatchProcessor handles embedding generation for batches of concepts.
type ConceptBatchProcessor struct {
	concepts       storage.ConceptRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewConceptBatchProcessor creates a new concept batch processor.
func NewConceptBatchProcessor(concepts storage.ConceptRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *ConceptBatchProcessor {
	return &ConceptBatchProcessor{
		concepts:       concepts,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of concepts and updates them in the database.
// Concepts embed their summary when present, falling back to the title.
func (bp *ConceptBatchProcessor) Process(ctx context.Context, concepts []*core.Concept) error {
	if len(concepts) == 0 {
		return nil
	}

	texts := make([]string, len(concepts))
	for i, concept := range concepts {
		texts[i] = concept.Summary
		if texts[i] == "" {
			texts[i] = concept.Title
		}
	}

	embeddings, err := embedWithRetry(ctx, bp.embedder, texts, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return err
	}

	for i := range concepts {
		concepts[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.concepts.UpdateConcepts(ctx, concepts...)
	if err != nil {
		return fmt.Errorf("failed to update concepts: %w", err)
	}

	return nil
}

func embedWithRetry(ctx context.Context, embedder ai.Embedder, texts []string, maxRetries int, baseDelay time.Duration) ([][]float32, error) {
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = embedder.EmbedTexts(ctx, texts)
		return err
	}, maxRetries, baseDelay)

	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", maxRetries, err)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}

	return embeddings, nil
}
