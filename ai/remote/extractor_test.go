package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyreel/studyreel/ai"
)

func newTestExtractor(t *testing.T, handler http.HandlerFunc) *Extractor {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	extractor, err := NewExtractor(ai.NewConfig(ai.WithExtractorBaseURL(server.URL)))
	require.NoError(t, err)
	return extractor
}

func TestExtractConcepts(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/concepts/extract", r.URL.Path)

		var req extractRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint64(7), req.MaterialID)
		assert.Equal(t, "Newton's laws. Energy is conserved.", req.Text)

		json.NewEncoder(w).Encode(extractResponse{
			Concepts: []conceptPayload{
				{Title: "Concept 1: Newton's laws", Summary: "Newton's laws", Priority: 0, Embedding: []float32{0.1, 0.2}},
				{Title: "Concept 2: Energy is conserved", Summary: "Energy is conserved", Priority: 1},
			},
		})
	})

	concepts, err := extractor.ExtractConcepts(context.Background(), 7, "Newton's laws. Energy is conserved.")
	require.NoError(t, err)
	require.Len(t, concepts, 2)

	assert.Equal(t, "Concept 1: Newton's laws", concepts[0].Title)
	assert.Equal(t, []float32{0.1, 0.2}, concepts[0].Vector)
	assert.Equal(t, 1, concepts[1].Priority)
	assert.Empty(t, concepts[1].Vector)
}

func TestExtractConcepts_NonSuccessStatus(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	})

	_, err := extractor.ExtractConcepts(context.Background(), 1, "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestExtractConcepts_MalformedResponse(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := extractor.ExtractConcepts(context.Background(), 1, "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed extraction response")
}

func TestExtractConcepts_ContextCancelled(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.ExtractConcepts(ctx, 1, "some text")
	require.Error(t, err)
}

func TestNewExtractor_RequiresBaseURL(t *testing.T) {
	_, err := NewExtractor(ai.DefaultConfig())
	require.Error(t, err)
}
