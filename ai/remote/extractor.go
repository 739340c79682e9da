package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
)

// Extractor implements ai.ConceptExtractor against the concept-extraction
// microservice. The service speaks a small bespoke JSON protocol:
//
//	POST {base}/concepts/extract
//	{"material_id": 7, "text": "..."}
//	-> {"concepts": [{"title": "...", "summary": "...", "priority": 0, "embedding": [...]}]}
//
// Any transport error or non-2xx response is returned to the caller; the
// failover wrapper decides whether to degrade to the heuristic fallback.
type Extractor struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ai.ConceptExtractor = (*Extractor)(nil)

// extractRequest is the wire format of an extraction request.
type extractRequest struct {
	MaterialID uint64 `json:"material_id"`
	Text       string `json:"text"`
}

// conceptPayload matches the structure returned by the extraction service.
type conceptPayload struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Priority  int       `json:"priority"`
	Embedding []float32 `json:"embedding"`
}

// extractResponse is the wire format of an extraction response.
type extractResponse struct {
	Concepts []conceptPayload `json:"concepts"`
}

// NewExtractor creates an extractor speaking to the service at the
// configured base URL. The per-call deadline comes from the caller's
// context; the failover wrapper applies ai.Config.RequestTimeout.
func NewExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.ExtractorBaseURL == "" {
		return nil, fmt.Errorf("extractor base URL required")
	}

	return &Extractor{
		baseURL: config.ExtractorBaseURL,
		client:  &http.Client{},
		logger:  slog.Default().With("component", "remote-extractor"),
	}, nil
}

// ExtractConcepts posts the material text to the extraction service and
// decodes the ordered concept payloads.
func (x *Extractor) ExtractConcepts(ctx context.Context, materialID core.ID, text string) ([]ai.ExtractedConcept, error) {
	body, err := json.Marshal(extractRequest{
		MaterialID: uint64(materialID),
		Text:       text,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		x.baseURL+"/concepts/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for a useful error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, snippet)
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}

	concepts := make([]ai.ExtractedConcept, 0, len(decoded.Concepts))
	for _, payload := range decoded.Concepts {
		concepts = append(concepts, ai.ExtractedConcept{
			Title:    payload.Title,
			Summary:  payload.Summary,
			Priority: payload.Priority,
			Vector:   payload.Embedding,
		})
	}

	x.logger.Debug("extracted concepts", "material", materialID, "count", len(concepts))
	return concepts, nil
}
