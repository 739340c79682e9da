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


// Package ai provides abstractions for the AI services used in StudyReel.
//
// This package defines interfaces for text embeddings and concept
// extraction. It follows the dependency inversion principle, allowing the
// pipeline to depend on abstractions rather than concrete implementations.
//
// # Design Principles
//
// Each external AI capability is an interface with two implementations:
// one networked, one deterministic-local. Which one runs is decided by
// configuration presence, never by runtime type inspection:
//
//   - Embedder: ai/openai (OpenAI-compatible APIs) or ai/fallback
//     (BLAKE2b-derived pseudo-embeddings)
//   - ConceptExtractor: ai/remote (extraction microservice) or
//     ai/fallback (heuristic sentence splitter)
//
// The FailoverEmbedder and FailoverExtractor wrappers bind a primary to
// its fallback so that any backend failure (timeout, auth error,
// malformed response) degrades to a deterministic result instead of
// propagating. Identical text always yields an identical fallback
// vector, which keeps offline runs reproducible.
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("embeddinggemma"),
//	)
//	primary, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	embedder, err := ai.NewFailoverEmbedder(primary, fallback.NewEmbedder(cfg.FallbackDimension), cfg.RequestTimeout, nil)
//
// With nothing configured, fallback.NewProvider alone drives the whole
// pipeline, which is how the offline tests run.
package ai
