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

package transcript

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmpty(t *testing.T) {
	windows := Chunk(nil, 30)
	assert.Empty(t, windows)

	windows = Chunk([]Item{}, 30)
	assert.Empty(t, windows)
}

func TestChunkSingleShortItem(t *testing.T) {
	items := []Item{{Text: "hello", Start: 0, Duration: 5}}

	windows := Chunk(items, 30)
	require.Len(t, windows, 1)
	assert.Equal(t, "hello", windows[0].Text)
	assert.Equal(t, 0.0, windows[0].Start)
	assert.Equal(t, 5.0, windows[0].End)
}

func TestChunkClosesAtWindowBoundary(t *testing.T) {
	items := []Item{
		{Text: "a", Start: 0, Duration: 10},
		{Text: "b", Start: 10, Duration: 10},
		{Text: "c", Start: 20, Duration: 10},
		{Text: "d", Start: 30, Duration: 10},
	}

	windows := Chunk(items, 30)
	require.Len(t, windows, 2)

	assert.Equal(t, "a b c", windows[0].Text)
	assert.Equal(t, 0.0, windows[0].Start)
	assert.Equal(t, 30.0, windows[0].End)

	assert.Equal(t, "d", windows[1].Text)
	assert.Equal(t, 30.0, windows[1].Start)
	assert.Equal(t, 40.0, windows[1].End)
}

func TestChunkTrailingBufferFlushed(t *testing.T) {
	items := []Item{
		{Text: "a", Start: 0, Duration: 30},
		{Text: "b", Start: 30, Duration: 5},
		{Text: "c", Start: 35, Duration: 5},
	}

	windows := Chunk(items, 30)
	require.Len(t, windows, 2)
	assert.Equal(t, "b c", windows[1].Text)
	assert.Equal(t, 30.0, windows[1].Start)
	assert.Equal(t, 40.0, windows[1].End)
}

func TestChunkWindowsOrderedAndDisjoint(t *testing.T) {
	items := make([]Item, 0, 12)
	for idx := 0; idx < 12; idx++ {
		items = append(items, Item{
			Text:     "line",
			Start:    float64(idx) * 10,
			Duration: 10,
		})
	}

	windows := Chunk(items, 30)
	require.NotEmpty(t, windows)
	for idx := 1; idx < len(windows); idx++ {
		assert.GreaterOrEqual(t, windows[idx].Start, windows[idx-1].End,
			"windows must not overlap")
	}
	for _, window := range windows {
		assert.Less(t, window.Start, window.End)
	}
}

func TestChunkPreservesText(t *testing.T) {
	items := []Item{
		{Text: "one", Start: 0, Duration: 12},
		{Text: "two", Start: 12, Duration: 12},
		{Text: "three", Start: 24, Duration: 12},
		{Text: "four", Start: 36, Duration: 12},
		{Text: "five", Start: 48, Duration: 12},
	}

	windows := Chunk(items, 30)
	parts := make([]string, 0, len(windows))
	for _, window := range windows {
		parts = append(parts, window.Text)
	}
	assert.Equal(t, "one two three four five", strings.Join(parts, " "),
		"concatenated windows must reproduce the transcript")
}

func TestChunkDefaultsMissingDuration(t *testing.T) {
	items := []Item{{Text: "a", Start: 0}}

	windows := Chunk(items, 30)
	require.Len(t, windows, 1)
	assert.Equal(t, 3.0, windows[0].End)
}

func TestChunkInvalidWindowFallsBackToDefault(t *testing.T) {
	items := []Item{
		{Text: "a", Start: 0, Duration: 30},
		{Text: "b", Start: 30, Duration: 30},
	}

	windows := Chunk(items, 0)
	require.Len(t, windows, 2)
}

func TestStubFetcherShape(t *testing.T) {
	fetcher := NewStubFetcher()

	items, err := fetcher.FetchTranscript(context.Background(), "demo-42")
	require.NoError(t, err)
	require.Len(t, items, 5)

	for idx, item := range items {
		assert.Contains(t, item.Text, "demo-42")
		assert.Equal(t, float64(idx)*30, item.Start)
		assert.Equal(t, 30.0, item.Duration)
	}
}

func TestStubFetcherChunksIntoFiveWindows(t *testing.T) {
	fetcher := NewStubFetcher()

	items, err := fetcher.FetchTranscript(context.Background(), "demo-7")
	require.NoError(t, err)

	windows := Chunk(items, DefaultChunkSeconds)
	assert.Len(t, windows, 5, "each stub item fills a full window")
}
