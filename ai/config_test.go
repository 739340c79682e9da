package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.EmbeddingHost, "no networked backend by default")
	assert.Empty(t, cfg.ExtractorBaseURL)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 16, cfg.FallbackDimension)

	assert.False(t, cfg.EmbeddingConfigured())
	assert.False(t, cfg.ExtractorConfigured())
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://localhost:11434/v1"),
		WithEmbeddingModel("embeddinggemma"),
		WithExtractorBaseURL("http://localhost:8001"),
		WithRequestTimeout(10*time.Second),
		WithFallbackDimension(24),
	)

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "http://localhost:8001", cfg.ExtractorBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 24, cfg.FallbackDimension)

	assert.True(t, cfg.EmbeddingConfigured())
	assert.True(t, cfg.ExtractorConfigured())
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name          string
		embeddingHost string
		extractorURL  string
		wantEmbedding string
		wantExtractor string
	}{
		{
			name:          "adds v1 suffix to embedding host",
			embeddingHost: "http://localhost:11434",
			wantEmbedding: "http://localhost:11434/v1",
		},
		{
			name:          "strips trailing slash before adding v1",
			embeddingHost: "http://localhost:11434/",
			wantEmbedding: "http://localhost:11434/v1",
		},
		{
			name:          "leaves existing v1 suffix alone",
			embeddingHost: "http://localhost:11434/v1",
			wantEmbedding: "http://localhost:11434/v1",
		},
		{
			name:          "strips extractor trailing slash",
			extractorURL:  "http://localhost:8001/",
			wantExtractor: "http://localhost:8001",
		},
		{
			name: "empty hosts stay empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(
				WithEmbeddingHost(tt.embeddingHost),
				WithExtractorBaseURL(tt.extractorURL),
			)
			cfg.Normalize()

			assert.Equal(t, tt.wantEmbedding, cfg.EmbeddingHost)
			assert.Equal(t, tt.wantExtractor, cfg.ExtractorBaseURL)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("embedding host without model", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://localhost:11434"),
			WithEmbeddingModel(""),
		)
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := NewConfig(WithRequestTimeout(0))
		require.Error(t, cfg.Validate())
	})

	t.Run("fallback dimension out of range", func(t *testing.T) {
		for _, dim := range []int{0, -1, 65} {
			cfg := NewConfig(WithFallbackDimension(dim))
			assert.Error(t, cfg.Validate(), "dimension %d should be rejected", dim)
		}
	})

	t.Run("validate normalizes", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}
