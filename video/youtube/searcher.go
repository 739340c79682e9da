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

// Package youtube searches the YouTube Data API v3 for candidate videos.
package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/studyreel/studyreel/video"
)

// ErrAPIKeyRequired indicates a Data API searcher was requested without a key.
var ErrAPIKeyRequired = errors.New("youtube api key is required")

// Searcher queries the YouTube Data API v3 search endpoint.
type Searcher struct {
	service *yt.Service
}

var _ video.Searcher = (*Searcher)(nil)

// NewSearcher creates a Data API searcher authenticated with apiKey.
func NewSearcher(ctx context.Context, apiKey string) (*Searcher, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Searcher{service: service}, nil
}

// Search returns up to maxResults video entries matching query.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]video.Result, error) {
	call := s.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(int64(maxResults)).
		Type("video").
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	results := make([]video.Result, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		result := video.Result{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			Description:  item.Snippet.Description,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			result.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
		}
		results = append(results, result)
	}
	return results, nil
}
