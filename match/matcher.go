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

package match

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
)

const (
	// DefaultThreshold is the minimum similarity for a chunk to count
	// as a match.
	DefaultThreshold float32 = 0.7

	// DefaultTopK caps how many chunks are kept per concept.
	DefaultTopK = 3
)

// ErrEmbedderRequired indicates a matcher was built without an embedder.
var ErrEmbedderRequired = errors.New("embedder is required")

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the minimum similarity threshold.
func WithThreshold(threshold float32) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// WithTopK overrides how many matches are kept per concept.
func WithTopK(topK int) Option {
	return func(m *Matcher) {
		if topK > 0 {
			m.topK = topK
		}
	}
}

// Matcher scores transcript chunks against a concept vector. Chunks that
// arrive without a vector are embedded on the fly; chunks that carry one
// are scored as-is.
type Matcher struct {
	embedder  ai.Embedder
	threshold float32
	topK      int
}

// NewMatcher creates a matcher backed by embedder.
func NewMatcher(embedder ai.Embedder, opts ...Option) (*Matcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	m := &Matcher{
		embedder:  embedder,
		threshold: DefaultThreshold,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Threshold returns the configured similarity cutoff.
func (m *Matcher) Threshold() float32 {
	return m.threshold
}

// TopK returns the configured per-concept match cap.
func (m *Matcher) TopK() int {
	return m.topK
}

// Match scores each chunk against conceptVector and returns at most topK
// matches with similarity at or above the threshold, ordered from most
// to least similar. The input chunk slice is not mutated except that
// chunks missing a vector get one filled in.
func (m *Matcher) Match(ctx context.Context, conceptVector []float32, chunks []*core.TranscriptChunk) ([]core.ChunkMatch, error) {
	if len(conceptVector) == 0 || len(chunks) == 0 {
		return []core.ChunkMatch{}, nil
	}

	if err := m.fillVectors(ctx, chunks); err != nil {
		return nil, err
	}

	matches := make([]core.ChunkMatch, 0, len(chunks))
	for _, chunk := range chunks {
		score := Cosine(conceptVector, chunk.Vector)
		if score >= m.threshold {
			matches = append(matches, core.ChunkMatch{Chunk: chunk, Score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b core.ChunkMatch) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(matches) > m.topK {
		matches = matches[:m.topK]
	}
	return matches, nil
}

// fillVectors embeds the text of chunks that have no vector yet, in a
// single batch call.
func (m *Matcher) fillVectors(ctx context.Context, chunks []*core.TranscriptChunk) error {
	var pending []*core.TranscriptChunk
	var texts []string
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			pending = append(pending, chunk)
			texts = append(texts, chunk.Text)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	vectors, err := m.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed %d chunks: %w", len(pending), err)
	}
	if len(vectors) != len(pending) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(pending))
	}
	for i, chunk := range pending {
		chunk.Vector = vectors[i]
	}
	return nil
}
