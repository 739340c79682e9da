package transcript

import (
	"context"
	"fmt"
)

const (
	stubItemCount    = 5
	stubItemDuration = 30.0
)

// StubFetcher returns a fixed synthetic transcript for any video. The
// items embed the video identifier so transcripts for different videos
// embed to different vectors, and the timings tile cleanly into
// 30-second windows.
type StubFetcher struct{}

var _ Fetcher = (*StubFetcher)(nil)

// NewStubFetcher creates a deterministic stub fetcher.
func NewStubFetcher() *StubFetcher {
	return &StubFetcher{}
}

func (f *StubFetcher) FetchTranscript(_ context.Context, videoID string) ([]Item, error) {
	items := make([]Item, 0, stubItemCount)
	for idx := 0; idx < stubItemCount; idx++ {
		items = append(items, Item{
			Text:     fmt.Sprintf("Segment %d for %s", idx, videoID),
			Start:    float64(idx) * stubItemDuration,
			Duration: stubItemDuration,
		})
	}
	return items, nil
}
