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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates every stored vector with the configured embedder.
// It walks all transcript chunks and all concepts, so it must be rerun
// whenever the embedding model changes.
type Reembedder struct {
	materials        storage.MaterialRepository
	concepts         storage.ConceptRepository
	videos           storage.VideoRepository
	embedder         ai.Embedder
	config           *Config
	progress         io.Writer
	chunkProcessor   *ChunkBatchProcessor
	conceptProcessor *ConceptBatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(materials storage.MaterialRepository, concepts storage.ConceptRepository, videos storage.VideoRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		materials:        materials,
		concepts:         concepts,
		videos:           videos,
		embedder:         embedder,
		config:           config,
		progress:         progress,
		chunkProcessor:   NewChunkBatchProcessor(videos, embedder, config.MaxRetries, config.RetryDelay),
		conceptProcessor: NewConceptBatchProcessor(concepts, embedder, config.MaxRetries, config.RetryDelay),
	}
}

// Run executes the reembedding operation.
// All transcript chunks and concepts in the database are reembedded.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	chunks, err := r.collectChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect chunks: %w", err)
	}

	concepts, err := r.collectConcepts(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect concepts: %w", err)
	}

	total := len(chunks) + len(concepts)
	if total == 0 {
		fmt.Fprintf(r.progress, "No vectors found in database (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks and %d concepts (batch size: %d)\n",
		len(chunks), len(concepts), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	for start := 0; start < len(chunks); start += r.config.BatchSize {
		end := min(start+r.config.BatchSize, len(chunks))
		if err := r.chunkProcessor.Process(ctx, chunks[start:end]); err != nil {
			return fmt.Errorf("failed to process chunk batch: %w", err)
		}
		processed += end - start
		tracker.Update(processed)
	}

	for start := 0; start < len(concepts); start += r.config.BatchSize {
		end := min(start+r.config.BatchSize, len(concepts))
		if err := r.conceptProcessor.Process(ctx, concepts[start:end]); err != nil {
			return fmt.Errorf("failed to process concept batch: %w", err)
		}
		processed += end - start
		tracker.Update(processed)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d vectors in %v (%.1f vectors/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

func (r *Reembedder) collectChunks(ctx context.Context) ([]*core.TranscriptChunk, error) {
	videos, err := r.videos.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	var chunks []*core.TranscriptChunk
	for _, video := range videos {
		videoChunks, err := r.videos.GetChunksByVideo(ctx, video.Id)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, videoChunks...)
	}
	return chunks, nil
}

func (r *Reembedder) collectConcepts(ctx context.Context) ([]*core.Concept, error) {
	materials, err := r.materials.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}

	var concepts []*core.Concept
	for _, material := range materials {
		materialConcepts, err := r.concepts.GetConceptsByMaterial(ctx, material.Id)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, materialConcepts...)
	}
	return concepts, nil
}
