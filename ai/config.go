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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service backends.
// Empty host/URL fields mean the corresponding networked backend is not
// configured and the deterministic local fallback is used instead.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	// Empty means embeddings are produced by the deterministic fallback.
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// ExtractorBaseURL is the base URL of the concept-extraction microservice.
	// Empty means the local heuristic sentence splitter is used.
	ExtractorBaseURL string

	// RequestTimeout bounds each call to a networked backend.
	// Default: 30s
	RequestTimeout time.Duration

	// FallbackDimension is the length of deterministic fallback embeddings.
	// Default: 16
	FallbackDimension int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithExtractorBaseURL sets the concept-extraction service base URL.
func WithExtractorBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.ExtractorBaseURL = url
	}
}

// WithRequestTimeout sets the per-call timeout for networked backends.
func WithRequestTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithFallbackDimension sets the deterministic fallback embedding length.
func WithFallbackDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.FallbackDimension = dim
	}
}

// DefaultConfig returns a Config with no networked backends configured.
// A pipeline built from it runs entirely on deterministic fallbacks.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:    "text-embedding-3-small",
		RequestTimeout:    30 * time.Second,
		FallbackDimension: 16,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithEmbeddingHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("embeddinggemma"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// EmbeddingConfigured reports whether a networked embedding backend is set up.
func (c *Config) EmbeddingConfigured() bool {
	return c.EmbeddingHost != ""
}

// ExtractorConfigured reports whether a networked extraction backend is set up.
func (c *Config) ExtractorConfigured() bool {
	return c.ExtractorBaseURL != ""
}

// Normalize ensures the configuration is in a canonical form.
// The embedding host gets a /v1 suffix if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc); the extractor base URL
// loses any trailing slash so paths can be appended uniformly.
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	c.ExtractorBaseURL = strings.TrimSuffix(c.ExtractorBaseURL, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// Unconfigured backends are valid; the fallbacks cover them.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost != "" && c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required when EmbeddingHost is set")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("ai config: RequestTimeout must be positive")
	}
	if c.FallbackDimension < 1 || c.FallbackDimension > 64 {
		return errors.New("ai config: FallbackDimension must be between 1 and 64")
	}
	return nil
}
