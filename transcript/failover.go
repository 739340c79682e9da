package transcript

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrFallbackFetcherRequired indicates a failover fetcher was built
// without a fallback implementation.
var ErrFallbackFetcherRequired = errors.New("fallback fetcher is required")

// FailoverFetcher tries a primary fetcher under a bounded timeout and
// degrades to a deterministic fallback when the primary is absent or
// fails.
type FailoverFetcher struct {
	primary  Fetcher
	fallback Fetcher
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Fetcher = (*FailoverFetcher)(nil)

// NewFailoverFetcher builds a fetcher that prefers primary and falls back
// to fallback. primary may be nil, fallback may not.
func NewFailoverFetcher(primary, fallback Fetcher, timeout time.Duration) (*FailoverFetcher, error) {
	if fallback == nil {
		return nil, ErrFallbackFetcherRequired
	}
	return &FailoverFetcher{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   slog.Default().With("component", "transcript-fetcher"),
	}, nil
}

func (f *FailoverFetcher) FetchTranscript(ctx context.Context, videoID string) ([]Item, error) {
	if f.primary != nil {
		callCtx, cancel := context.WithTimeout(ctx, f.timeout)
		items, err := f.primary.FetchTranscript(callCtx, videoID)
		cancel()
		if err == nil {
			return items, nil
		}
		f.logger.Warn("primary transcript fetch failed; using deterministic fallback",
			"video_id", videoID, "error", err)
	}
	return f.fallback.FetchTranscript(ctx, videoID)
}
