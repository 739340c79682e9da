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

package video

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSearcher struct {
	searchFunc func(ctx context.Context, query string, maxResults int) ([]Result, error)
	calls      int
}

func (s *scriptedSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	s.calls++
	return s.searchFunc(ctx, query, maxResults)
}

func TestStubSearcherDeterministic(t *testing.T) {
	searcher := NewStubSearcher()

	first, err := searcher.Search(context.Background(), "newton laws", 3)
	require.NoError(t, err)
	second, err := searcher.Search(context.Background(), "newton laws", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same query should reproduce identical results")
	require.Len(t, first, 3)
}

func TestStubSearcherSequentialIDs(t *testing.T) {
	searcher := NewStubSearcher()

	results, err := searcher.Search(context.Background(), "energy", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	seed := querySeed("energy")
	for idx, result := range results {
		assert.Equal(t, fmt.Sprintf("demo-%d", seed+uint32(idx)), result.VideoID)
		assert.Equal(t, fmt.Sprintf("Demo video %d for energy", idx+1), result.Title)
		assert.Equal(t, "StudyReel", result.ChannelTitle)
		assert.NotEmpty(t, result.ThumbnailURL)
	}
}

func TestStubSearcherDistinctQueries(t *testing.T) {
	searcher := NewStubSearcher()

	a, err := searcher.Search(context.Background(), "thermodynamics", 3)
	require.NoError(t, err)
	b, err := searcher.Search(context.Background(), "relativity", 3)
	require.NoError(t, err)

	assert.NotEqual(t, a[0].VideoID, b[0].VideoID)
}

func TestStubSearcherMaxResults(t *testing.T) {
	searcher := NewStubSearcher()

	results, err := searcher.Search(context.Background(), "algebra", 7)
	require.NoError(t, err)
	assert.Len(t, results, 7)

	results, err = searcher.Search(context.Background(), "algebra", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewFailoverSearcherRequiresFallback(t *testing.T) {
	_, err := NewFailoverSearcher(nil, nil, time.Second)
	require.ErrorIs(t, err, ErrFallbackSearcherRequired)
}

func TestFailoverSearcherNilPrimary(t *testing.T) {
	searcher, err := NewFailoverSearcher(nil, NewStubSearcher(), time.Second)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "calculus", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestFailoverSearcherPrimarySuccess(t *testing.T) {
	primary := &scriptedSearcher{
		searchFunc: func(_ context.Context, _ string, _ int) ([]Result, error) {
			return []Result{{VideoID: "real-1", Title: "Real result"}}, nil
		},
	}
	fallback := &scriptedSearcher{
		searchFunc: func(_ context.Context, _ string, _ int) ([]Result, error) {
			t.Fatal("fallback should not be consulted when primary succeeds")
			return nil, nil
		},
	}

	searcher, err := NewFailoverSearcher(primary, fallback, time.Second)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "calculus", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "real-1", results[0].VideoID)
	assert.Equal(t, 1, primary.calls)
}

func TestFailoverSearcherDegradesOnError(t *testing.T) {
	primary := &scriptedSearcher{
		searchFunc: func(_ context.Context, _ string, _ int) ([]Result, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	searcher, err := NewFailoverSearcher(primary, NewStubSearcher(), time.Second)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "calculus", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, primary.calls)
}

func TestFailoverSearcherDegradesOnTimeout(t *testing.T) {
	primary := &scriptedSearcher{
		searchFunc: func(ctx context.Context, _ string, _ int) ([]Result, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	searcher, err := NewFailoverSearcher(primary, NewStubSearcher(), 10*time.Millisecond)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "calculus", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}
