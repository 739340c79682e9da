package fallback

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyreel/studyreel/ai"
	"github.com/studyreel/studyreel/core"
)

const (
	// maxConcepts bounds how many sentences become concepts.
	maxConcepts = 5
	// titlePrefixLen is how much of a sentence seeds the concept title.
	titlePrefixLen = 60
)

// Extractor implements ai.ConceptExtractor with a local heuristic:
// the first few sentences of the text become the concepts. It is the
// degraded-mode stand-in for the extraction microservice and produces
// concepts in exactly the same shape.
type Extractor struct{}

var _ ai.ConceptExtractor = (*Extractor)(nil)

// NewExtractor creates a heuristic concept extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractConcepts splits text on sentence-terminating periods, trims
// whitespace, discards empty fragments, and emits one concept per sentence
// for up to maxConcepts sentences. Priority is the positional index; the
// vector is left empty and deferred to the embedder.
func (x *Extractor) ExtractConcepts(_ context.Context, _ core.ID, text string) ([]ai.ExtractedConcept, error) {
	sentences := splitSentences(text)
	if len(sentences) > maxConcepts {
		sentences = sentences[:maxConcepts]
	}

	concepts := make([]ai.ExtractedConcept, 0, len(sentences))
	for idx, sentence := range sentences {
		concepts = append(concepts, ai.ExtractedConcept{
			Title:    fmt.Sprintf("Concept %d: %s", idx+1, titlePrefix(sentence)),
			Summary:  sentence,
			Priority: idx,
		})
	}
	return concepts, nil
}

// splitSentences breaks text on periods, trimming whitespace and dropping
// empty fragments.
func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// titlePrefix returns up to titlePrefixLen runes of a sentence.
func titlePrefix(sentence string) string {
	runes := []rune(sentence)
	if len(runes) <= titlePrefixLen {
		return sentence
	}
	return string(runes[:titlePrefixLen])
}
