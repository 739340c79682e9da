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


package fallback

import "github.com/studyreel/studyreel/ai"

// Provider implements ai.Provider entirely with deterministic local
// services. It is the zero-connectivity configuration and doubles as the
// test double: every output is a pure function of its input.
type Provider struct {
	embedder  *Embedder
	extractor *Extractor
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a provider backed by deterministic fallbacks.
//
// Returns ai.Provider interface for consistency with networked constructors.
func NewProvider(dimension int) ai.Provider {
	return &Provider{
		embedder:  NewEmbedder(dimension),
		extractor: NewExtractor(),
	}
}

// Embedder returns the deterministic embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// ConceptExtractor returns the heuristic concept extractor.
func (p *Provider) ConceptExtractor() ai.ConceptExtractor {
	return p.extractor
}

// Close is a no-op; fallback services hold no resources.
func (p *Provider) Close() error {
	return nil
}
