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

// Package transcript retrieves timed caption items for videos and folds
// them into fixed-duration windows suitable for embedding. Retrieval runs
// against a remote caption service when one is configured and degrades to
// a deterministic stub otherwise, so the pipeline stays runnable offline.
package transcript

import "context"

// Item is a single timed caption line.
type Item struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Fetcher retrieves the full ordered transcript for a video.
type Fetcher interface {
	FetchTranscript(ctx context.Context, videoID string) ([]Item, error)
}
