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

package studyreel

import (
	"context"
	"io"
	"log/slog"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/ai/fallback"
	"github.com/studyreel/studyreel/ai/openai"
	"github.com/studyreel/studyreel/ai/remote"
	"github.com/studyreel/studyreel/pipeline"
	"github.com/studyreel/studyreel/reembed"
	"github.com/studyreel/studyreel/search"
	"github.com/studyreel/studyreel/storage"
	"github.com/studyreel/studyreel/storage/badger"
	"github.com/studyreel/studyreel/transcript"
	"github.com/studyreel/studyreel/video"
	"github.com/studyreel/studyreel/video/youtube"
)

// Database wires the storage backend, repositories, and external services
// into one handle. Every remote service is paired with a deterministic
// local fallback, so a Database built without any configuration still
// runs the full pipeline offline.
type Database struct {
	backend   *badger.Backend
	materials storage.MaterialRepository
	concepts  storage.ConceptRepository
	videos    storage.VideoRepository
	embedder  ai.Embedder
	extractor ai.ConceptExtractor
	searcher  video.Searcher
	fetcher   transcript.Fetcher
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig          *ai.Config
	youtubeAPIKey     string
	transcriptBaseURL string
	inMemory          bool
}

// WithAIConfig sets the AI backend configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithYouTubeAPIKey enables the YouTube Data API searcher.
// Without it, video search uses the deterministic stub.
func WithYouTubeAPIKey(apiKey string) DatabaseOption {
	return func(o *databaseOptions) {
		o.youtubeAPIKey = apiKey
	}
}

// WithTranscriptBaseURL enables the HTTP transcript fetcher.
// Without it, transcripts come from the deterministic stub.
func WithTranscriptBaseURL(baseURL string) DatabaseOption {
	return func(o *databaseOptions) {
		o.transcriptBaseURL = baseURL
	}
}

// WithInMemory opens the backend in memory, discarding data on Close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create material repository
	materials, err := badger.NewMaterialRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create concept repository
	concepts, err := badger.NewConceptRepository(backend)
	if err != nil {
		materials.Close()
		backend.Close()
		return nil, err
	}

	// Create video repository
	videos, err := badger.NewVideoRepository(backend)
	if err != nil {
		concepts.Close()
		materials.Close()
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:   backend,
		materials: materials,
		concepts:  concepts,
		videos:    videos,
		logger:    slog.Default(),
	}

	if err := db.buildServices(options); err != nil {
		videos.Close()
		concepts.Close()
		materials.Close()
		backend.Close()
		return nil, err
	}

	return db, nil
}

// buildServices assembles the AI, video search, and transcript services.
// Configured remote backends are wrapped in failover pairs; unconfigured
// concerns go straight to their deterministic fallback.
func (db *Database) buildServices(options *databaseOptions) error {
	cfg := options.aiConfig
	provider := fallback.NewProvider(cfg.FallbackDimension)

	db.embedder = provider.Embedder()
	if cfg.EmbeddingConfigured() {
		primary, err := openai.NewEmbedder(cfg)
		if err != nil {
			return err
		}
		db.embedder, err = ai.NewFailoverEmbedder(primary, provider.Embedder(), cfg.RequestTimeout, db.logger)
		if err != nil {
			return err
		}
	}

	db.extractor = provider.ConceptExtractor()
	if cfg.ExtractorConfigured() {
		primary, err := remote.NewExtractor(cfg)
		if err != nil {
			return err
		}
		db.extractor, err = ai.NewFailoverExtractor(primary, provider.ConceptExtractor(), cfg.RequestTimeout, db.logger)
		if err != nil {
			return err
		}
	}

	db.searcher = video.NewStubSearcher()
	if options.youtubeAPIKey != "" {
		primary, err := youtube.NewSearcher(context.Background(), options.youtubeAPIKey)
		if err != nil {
			return err
		}
		db.searcher, err = video.NewFailoverSearcher(primary, video.NewStubSearcher(), cfg.RequestTimeout)
		if err != nil {
			return err
		}
	}

	db.fetcher = transcript.NewStubFetcher()
	if options.transcriptBaseURL != "" {
		primary, err := transcript.NewHTTPFetcher(options.transcriptBaseURL, cfg.RequestTimeout)
		if err != nil {
			return err
		}
		db.fetcher, err = transcript.NewFailoverFetcher(primary, transcript.NewStubFetcher(), cfg.RequestTimeout)
		if err != nil {
			return err
		}
	}

	return nil
}

func (db *Database) Close() error {
	if err := db.videos.Close(); err != nil {
		db.logger.Error("error closing video repository", "err", err)
		return err
	}
	if err := db.concepts.Close(); err != nil {
		db.logger.Error("error closing concept repository", "err", err)
		return err
	}
	if err := db.materials.Close(); err != nil {
		db.logger.Error("error closing material repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MaterialRepository() storage.MaterialRepository {
	return db.materials
}

func (db *Database) ConceptRepository() storage.ConceptRepository {
	return db.concepts
}

func (db *Database) VideoRepository() storage.VideoRepository {
	return db.videos
}

// NewPipeline creates a processing pipeline over the database's
// repositories and services.
func (db *Database) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(db.materials, db.concepts, db.videos, db.extractor, db.embedder, db.searcher, db.fetcher, opts...)
}

// NewTrigger creates a background dispatcher over a fresh pipeline.
func (db *Database) NewTrigger(opts ...pipeline.TriggerOption) (*pipeline.Trigger, error) {
	p, err := db.NewPipeline()
	if err != nil {
		return nil, err
	}
	return pipeline.NewTrigger(p, opts...)
}

// NewSearcher creates an ad-hoc moment searcher over stored chunks.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.videos, db.embedder, opts...)
}

// NewReembedder creates a reembedder that rewrites every stored vector
// with the database's current embedder.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.materials, db.concepts, db.videos, db.embedder, config, progress)
}
