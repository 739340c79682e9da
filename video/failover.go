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
	"log/slog"
	"time"
)

// ErrFallbackSearcherRequired indicates a failover searcher was built
// without a fallback implementation.
var ErrFallbackSearcherRequired = errors.New("fallback searcher is required")

// FailoverSearcher queries a primary searcher and degrades to a
// deterministic fallback when the primary is absent or fails. The primary
// call runs under a bounded timeout so a stalled upstream cannot block
// the pipeline.
type FailoverSearcher struct {
	primary  Searcher
	fallback Searcher
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Searcher = (*FailoverSearcher)(nil)

// NewFailoverSearcher builds a searcher that prefers primary and falls
// back to fallback. primary may be nil, fallback may not.
func NewFailoverSearcher(primary, fallback Searcher, timeout time.Duration) (*FailoverSearcher, error) {
	if fallback == nil {
		return nil, ErrFallbackSearcherRequired
	}
	return &FailoverSearcher{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   slog.Default().With("component", "video-searcher"),
	}, nil
}

func (f *FailoverSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if f.primary != nil {
		callCtx, cancel := context.WithTimeout(ctx, f.timeout)
		results, err := f.primary.Search(callCtx, query, maxResults)
		cancel()
		if err == nil {
			return results, nil
		}
		f.logger.Warn("primary video search failed; using deterministic fallback",
			"query", query, "error", err)
	}
	return f.fallback.Search(ctx, query, maxResults)
}
