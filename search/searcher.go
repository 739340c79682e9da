// Copyright 2026 StudyReel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

const (
	// DefaultMinSimilarity is the default similarity cutoff for hits.
	DefaultMinSimilarity float32 = 0.5

	// DefaultLimit is the default maximum number of hits.
	DefaultLimit = 10
)

// Searcher runs ad-hoc semantic search over stored transcript chunks,
// independent of the concept pipeline. The query is embedded and scored
// against every chunk vector in storage.
type Searcher struct {
	videos        storage.VideoRepository
	embedder      ai.Embedder
	minSimilarity float32
	limit         int
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithMinSimilarity sets the similarity cutoff for hits.
func WithMinSimilarity(minSimilarity float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = minSimilarity
		return nil
	}
}

// WithLimit sets the maximum number of hits.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit > 0 {
			s.limit = limit
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(videos storage.VideoRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if videos == nil {
		return nil, ErrVideoRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		videos:        videos,
		embedder:      embedder,
		minSimilarity: DefaultMinSimilarity,
		limit:         DefaultLimit,
		logger:        slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and returns the best-scoring transcript
// moments with their video metadata, ordered by similarity descending.
func (s *Searcher) Search(ctx context.Context, query string) ([]*core.MomentResult, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.videos.FindSimilarChunks(ctx, vector, s.minSimilarity, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunks: %w", err)
	}

	// Videos repeat across chunks, so resolve each internal ID once.
	videosByID := make(map[core.ID]*core.Video)
	results := make([]*core.MomentResult, 0, len(hits))
	for _, hit := range hits {
		videoObj, ok := videosByID[hit.Chunk.VideoId]
		if !ok {
			videoObj, err = s.videos.GetVideo(ctx, hit.Chunk.VideoId)
			if err != nil {
				s.logger.Warn("chunk references unknown video",
					"chunk_id", hit.Chunk.Id, "video_id", hit.Chunk.VideoId, "error", err)
				continue
			}
			videosByID[hit.Chunk.VideoId] = videoObj
		}
		results = append(results, &core.MomentResult{
			Chunk: hit.Chunk,
			Video: videoObj,
			Score: hit.Score,
		})
	}
	return results, nil
}
