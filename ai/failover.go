package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studyreel/studyreel/core"
)

var (
	// ErrFallbackEmbedderRequired is returned when a fallback embedder is not provided.
	ErrFallbackEmbedderRequired = errors.New("fallback embedder required")

	// ErrFallbackExtractorRequired is returned when a fallback extractor is not provided.
	ErrFallbackExtractorRequired = errors.New("fallback extractor required")
)

// FailoverEmbedder delegates to a networked primary embedder and degrades to
// a deterministic fallback on any failure. Primary calls are bounded by a
// timeout; a timeout on one call never aborts the run. With a nil primary
// every call goes straight to the fallback.
type FailoverEmbedder struct {
	primary  Embedder
	fallback Embedder
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Embedder = (*FailoverEmbedder)(nil)

// NewFailoverEmbedder creates a failover embedder.
// primary may be nil (unconfigured backend); fallback must not be.
func NewFailoverEmbedder(primary, fallback Embedder, timeout time.Duration, logger *slog.Logger) (*FailoverEmbedder, error) {
	if fallback == nil {
		return nil, ErrFallbackEmbedderRequired
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FailoverEmbedder{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With("component", "failover-embedder"),
	}, nil
}

// EmbedText generates an embedding for a single text string.
// Backend failures are logged, never returned; the fallback result is used.
func (e *FailoverEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if e.primary == nil {
		return e.fallback.EmbedText(ctx, text)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vector, err := e.primary.EmbedText(callCtx, text)
	if err != nil {
		e.logger.Warn("embedding backend failed; using deterministic fallback",
			"stage", "embed-text", "err", err)
		return e.fallback.EmbedText(ctx, text)
	}
	return vector, nil
}

// EmbedTexts generates embeddings for multiple text strings in a batch.
// A failed or short batch from the primary degrades the whole batch to the fallback.
func (e *FailoverEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if e.primary == nil {
		return e.fallback.EmbedTexts(ctx, texts)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vectors, err := e.primary.EmbedTexts(callCtx, texts)
	if err != nil || len(vectors) != len(texts) {
		e.logger.Warn("embedding backend failed; using deterministic fallback",
			"stage", "embed-texts", "count", len(texts), "err", err)
		return e.fallback.EmbedTexts(ctx, texts)
	}
	return vectors, nil
}

// FailoverExtractor delegates to a networked extraction backend and degrades
// to a local heuristic on any failure, with the same contract as FailoverEmbedder.
type FailoverExtractor struct {
	primary  ConceptExtractor
	fallback ConceptExtractor
	timeout  time.Duration
	logger   *slog.Logger
}

var _ ConceptExtractor = (*FailoverExtractor)(nil)

// NewFailoverExtractor creates a failover concept extractor.
// primary may be nil (unconfigured backend); fallback must not be.
func NewFailoverExtractor(primary, fallback ConceptExtractor, timeout time.Duration, logger *slog.Logger) (*FailoverExtractor, error) {
	if fallback == nil {
		return nil, ErrFallbackExtractorRequired
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FailoverExtractor{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With("component", "failover-extractor"),
	}, nil
}

// ExtractConcepts derives concepts from text, degrading to the local
// heuristic when the extraction backend is unreachable or errors.
// Both paths produce concepts in the same shape; callers cannot tell
// which one ran.
func (x *FailoverExtractor) ExtractConcepts(ctx context.Context, materialID core.ID, text string) ([]ExtractedConcept, error) {
	if x.primary == nil {
		return x.fallback.ExtractConcepts(ctx, materialID, text)
	}

	callCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	concepts, err := x.primary.ExtractConcepts(callCtx, materialID, text)
	if err != nil {
		x.logger.Warn("extraction backend failed; using heuristic fallback",
			"stage", "extract-concepts", "material", materialID, "err", err)
		return x.fallback.ExtractConcepts(ctx, materialID, text)
	}
	return concepts, nil
}
