package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/match"
	"github.com/studyreel/studyreel/storage"
	"github.com/studyreel/studyreel/transcript"
	"github.com/studyreel/studyreel/video"
)

const (
	// DefaultMaxVideos is how many video candidates are considered per concept.
	DefaultMaxVideos = 3

	// matchRationale is recorded on every pipeline-produced match.
	matchRationale = "Auto-matched"
)

// Pipeline orchestrates processing of a learning material: concept
// extraction, video discovery, transcript chunking, embedding, and
// concept-to-chunk matching.
type Pipeline struct {
	materials    storage.MaterialRepository
	concepts     storage.ConceptRepository
	videos       storage.VideoRepository
	extractor    ai.ConceptExtractor
	embedder     ai.Embedder
	searcher     video.Searcher
	fetcher      transcript.Fetcher
	matcher      *match.Matcher
	chunkSeconds float64
	maxVideos    int
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkSeconds sets the transcript window length in seconds.
// Default is transcript.DefaultChunkSeconds.
func WithChunkSeconds(seconds float64) Option {
	return func(p *Pipeline) error {
		if seconds > 0 {
			p.chunkSeconds = seconds
		}
		return nil
	}
}

// WithMaxVideos sets how many video candidates are considered per concept.
func WithMaxVideos(maxVideos int) Option {
	return func(p *Pipeline) error {
		if maxVideos > 0 {
			p.maxVideos = maxVideos
		}
		return nil
	}
}

// WithMatcherOptions overrides the similarity threshold and match cap.
func WithMatcherOptions(opts ...match.Option) Option {
	return func(p *Pipeline) error {
		matcher, err := match.NewMatcher(p.embedder, opts...)
		if err != nil {
			return err
		}
		p.matcher = matcher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a processing pipeline over the given repositories
// and services.
func NewPipeline(
	materials storage.MaterialRepository,
	concepts storage.ConceptRepository,
	videos storage.VideoRepository,
	extractor ai.ConceptExtractor,
	embedder ai.Embedder,
	searcher video.Searcher,
	fetcher transcript.Fetcher,
	opts ...Option,
) (*Pipeline, error) {
	if materials == nil {
		return nil, ErrMaterialRepositoryRequired
	}
	if concepts == nil {
		return nil, ErrConceptRepositoryRequired
	}
	if videos == nil {
		return nil, ErrVideoRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	matcher, err := match.NewMatcher(embedder)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		materials:    materials,
		concepts:     concepts,
		videos:       videos,
		extractor:    extractor,
		embedder:     embedder,
		searcher:     searcher,
		fetcher:      fetcher,
		matcher:      matcher,
		chunkSeconds: transcript.DefaultChunkSeconds,
		maxVideos:    DefaultMaxVideos,
		logger:       slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			return nil, optErr
		}
	}

	return p, nil
}

// Process runs the full pipeline for one material. The material moves
// from pending through extracting to ready. A missing material is the
// only unrecoverable input; errors after that point mark the material
// failed and are returned.
func (p *Pipeline) Process(ctx context.Context, materialID core.ID) error {
	material, err := p.materials.GetMaterial(ctx, materialID)
	if err != nil {
		p.logger.Error("material does not exist", "material_id", materialID, "err", err)
		return fmt.Errorf("failed to load material %d: %w", materialID, err)
	}

	if _, err := p.materials.UpdateMaterialStatus(ctx, materialID, core.StatusExtracting); err != nil {
		return p.fail(ctx, materialID, fmt.Errorf("failed to mark material extracting: %w", err))
	}

	extracted, err := p.extractor.ExtractConcepts(ctx, material.Id, material.TextContent)
	if err != nil {
		return p.fail(ctx, materialID, fmt.Errorf("failed to extract concepts: %w", err))
	}

	conceptObjs, err := p.persistConcepts(ctx, material, extracted)
	if err != nil {
		return p.fail(ctx, materialID, err)
	}

	for _, concept := range conceptObjs {
		query := material.Title + " " + concept.Title
		if err := p.matchConceptToVideos(ctx, concept, query); err != nil {
			return p.fail(ctx, materialID, err)
		}
	}

	if _, err := p.materials.UpdateMaterialStatus(ctx, materialID, core.StatusReady); err != nil {
		return p.fail(ctx, materialID, fmt.Errorf("failed to mark material ready: %w", err))
	}

	p.logger.Info("material processed",
		"material_id", materialID, "concepts", len(conceptObjs))
	return nil
}

// fail marks the material failed, preserving the original error.
func (p *Pipeline) fail(ctx context.Context, materialID core.ID, cause error) error {
	if _, err := p.materials.UpdateMaterialStatus(ctx, materialID, core.StatusFailed); err != nil {
		p.logger.Error("failed to mark material failed", "material_id", materialID, "err", err)
	}
	return cause
}

// persistConcepts stores extracted concepts, embedding any that arrived
// without a vector.
func (p *Pipeline) persistConcepts(ctx context.Context, material *core.Material, extracted []ai.ExtractedConcept) ([]*core.Concept, error) {
	conceptObjs := make([]*core.Concept, 0, len(extracted))
	for _, payload := range extracted {
		vector := payload.Vector
		if len(vector) == 0 {
			text := payload.Summary
			if text == "" {
				text = payload.Title
			}
			var err error
			vector, err = p.embedder.EmbedText(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("failed to embed concept %q: %w", payload.Title, err)
			}
		}

		conceptObjs = append(conceptObjs, &core.Concept{
			MaterialId: material.Id,
			Title:      payload.Title,
			Summary:    payload.Summary,
			Priority:   payload.Priority,
			Vector:     vector,
		})
	}

	if len(conceptObjs) == 0 {
		return conceptObjs, nil
	}
	return p.concepts.AddConcepts(ctx, conceptObjs...)
}

// matchConceptToVideos discovers candidate videos for a concept, chunks
// their transcripts, and persists the scored matches.
func (p *Pipeline) matchConceptToVideos(ctx context.Context, concept *core.Concept, query string) error {
	results, err := p.searcher.Search(ctx, query, p.maxVideos)
	if err != nil {
		return fmt.Errorf("failed to search videos for concept %d: %w", concept.Id, err)
	}

	for _, result := range results {
		videoObj, err := p.videos.GetOrCreateVideo(ctx, &core.Video{
			VideoID:      result.VideoID,
			Title:        result.Title,
			ChannelTitle: result.ChannelTitle,
			Description:  result.Description,
			ThumbnailURL: result.ThumbnailURL,
		})
		if err != nil {
			return fmt.Errorf("failed to store video %q: %w", result.VideoID, err)
		}

		chunks, err := p.ensureChunks(ctx, videoObj, result.VideoID)
		if err != nil {
			return err
		}

		matches, err := p.matcher.Match(ctx, concept.Vector, chunks)
		if err != nil {
			return fmt.Errorf("failed to match concept %d: %w", concept.Id, err)
		}

		if err := p.persistMatches(ctx, concept, matches); err != nil {
			return err
		}
	}
	return nil
}

// ensureChunks fetches and windows the video's transcript, reusing stored
// chunks and embedding only the windows seen for the first time.
func (p *Pipeline) ensureChunks(ctx context.Context, videoObj *core.Video, externalID string) ([]*core.TranscriptChunk, error) {
	items, err := p.fetcher.FetchTranscript(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript for %q: %w", externalID, err)
	}
	windows := transcript.Chunk(items, p.chunkSeconds)

	chunks := make([]*core.TranscriptChunk, 0, len(windows))
	var missing []*core.TranscriptChunk
	var missingTexts []string

	for _, window := range windows {
		stored, err := p.videos.GetChunk(ctx, externalID, window.Start, window.End)
		if err == nil {
			chunks = append(chunks, stored)
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up chunk: %w", err)
		}

		chunk := &core.TranscriptChunk{
			Id:           core.IDFromContent(core.ChunkIdentity(externalID, window.Start, window.End)),
			VideoId:      videoObj.Id,
			StartSeconds: window.Start,
			EndSeconds:   window.End,
			Text:         window.Text,
		}
		chunks = append(chunks, chunk)
		missing = append(missing, chunk)
		missingTexts = append(missingTexts, chunk.Text)
	}

	if len(missing) == 0 {
		return chunks, nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, missingTexts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %d chunks for %q: %w", len(missing), externalID, err)
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(missing))
	}
	for i, chunk := range missing {
		chunk.Vector = vectors[i]
	}

	if _, err := p.videos.AddChunks(ctx, missing...); err != nil {
		return nil, fmt.Errorf("failed to store chunks for %q: %w", externalID, err)
	}
	return chunks, nil
}

// persistMatches upserts the concept's matches in a single transaction.
func (p *Pipeline) persistMatches(ctx context.Context, concept *core.Concept, matches []core.ChunkMatch) error {
	if len(matches) == 0 {
		return nil
	}
	return p.videos.WithTransaction(ctx, func(ctx context.Context) error {
		for _, entry := range matches {
			_, err := p.videos.UpsertMatch(ctx, &core.ConceptMatch{
				ConceptId:  concept.Id,
				ChunkId:    entry.Chunk.Id,
				Similarity: entry.Score,
				Rationale:  matchRationale,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
