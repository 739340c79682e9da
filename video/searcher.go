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


// Package video provides candidate-video discovery for the matching
// pipeline: a Searcher interface with a networked implementation
// (video/youtube) and a deterministic offline stub, bound together by a
// failover wrapper.
package video

import "context"

// Result is candidate video metadata returned by a search, before it is
// persisted as a core.Video.
type Result struct {
	VideoID      string
	Title        string
	ChannelTitle string
	Description  string
	ThumbnailURL string
}

// Searcher finds candidate videos for a query string.
// Implementations must be thread-safe for concurrent use.
type Searcher interface {
	// Search returns up to maxResults candidate videos for the query.
	// An empty result is valid and not an error.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
