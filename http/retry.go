package http

import (
	"context"
	"time"

	"github.com/fwojciec/doxsearch"
)

// Ensure RetryFetcher implements doxsearch.Fetcher at compile time.
var _ doxsearch.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries failed fetches with backoff. Application errors
// such as ENOTFOUND are returned immediately since retrying cannot help.
type RetryFetcher struct {
	fetcher doxsearch.Fetcher
	delays  []time.Duration
}

// NewRetryFetcher wraps fetcher. One retry is made per delay; nil delays
// disable retrying.
func NewRetryFetcher(fetcher doxsearch.Fetcher, delays []time.Duration) *RetryFetcher {
	return &RetryFetcher{fetcher: fetcher, delays: delays}
}

// Fetch implements doxsearch.Fetcher.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.fetcher.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if doxsearch.ErrorCode(err) != doxsearch.EINTERNAL {
			return nil, err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return nil, lastErr
}
