package main

import (
	"context"
	"strings"

	"github.com/fwojciec/doxsearch"
)

// Compile-time interface verification.
var _ doxsearch.SourceReader = (*SourceRouter)(nil)

// SourceRouter implements doxsearch.SourceReader by sending HTTP(S)
// locations to the remote reader and everything else to the local one.
type SourceRouter struct {
	local  doxsearch.SourceReader
	remote doxsearch.SourceReader
}

// NewSourceRouter creates a new SourceRouter.
func NewSourceRouter(local, remote doxsearch.SourceReader) *SourceRouter {
	return &SourceRouter{local: local, remote: remote}
}

// Read implements doxsearch.SourceReader.
func (r *SourceRouter) Read(ctx context.Context, location string) ([]doxsearch.TokenRecord, error) {
	if isRemote(location) {
		return r.remote.Read(ctx, location)
	}
	return r.local.Read(ctx, location)
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
