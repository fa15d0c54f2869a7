package mock

import (
	"context"

	"github.com/fwojciec/doxsearch"
)

var _ doxsearch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of doxsearch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
