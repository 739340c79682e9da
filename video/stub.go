package video

import (
	"context"
	"fmt"
	"hash/fnv"
)

// StubSearcher implements Searcher with deterministic placeholder results.
// A numeric seed derived from the query keys the generated video IDs, so
// repeated calls with the same query reproduce the same candidates in
// offline and test runs.
type StubSearcher struct{}

var _ Searcher = (*StubSearcher)(nil)

// NewStubSearcher creates a deterministic stub searcher.
func NewStubSearcher() *StubSearcher {
	return &StubSearcher{}
}

// Search emits maxResults placeholder entries with seed-derived identifiers.
func (s *StubSearcher) Search(_ context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults < 1 {
		return []Result{}, nil
	}

	seed := querySeed(query)
	results := make([]Result, 0, maxResults)
	for idx := 0; idx < maxResults; idx++ {
		results = append(results, Result{
			VideoID:      fmt.Sprintf("demo-%d", seed+uint32(idx)),
			Title:        fmt.Sprintf("Demo video %d for %s", idx+1, query),
			ChannelTitle: "StudyReel",
			Description:  "Placeholder video metadata.",
			ThumbnailURL: "https://placehold.co/320x180",
		})
	}
	return results, nil
}

// querySeed derives a stable numeric seed from a query string.
func querySeed(query string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(query))
	return h.Sum32() % 1_000_000
}
