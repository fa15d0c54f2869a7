// Package fs provides file-based reading and writing of search indexes.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/doxsearch"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches the combined "all" section that Doxygen writes
// into its search directory. The per-category files repeat its entries.
const DefaultPattern = "**/all_*.js"

// DefaultConcurrency bounds the number of files decoded at once.
const DefaultConcurrency = 4

// Ensure Reader implements doxsearch.SourceReader at compile time.
var _ doxsearch.SourceReader = (*Reader)(nil)

// Reader reads search indexes from the local filesystem. A location is
// either a single artifact file, decoded according to its extension, or a
// directory whose files matching the glob pattern are decoded and merged.
type Reader struct {
	decoders    map[string]doxsearch.Decoder
	pattern     string
	concurrency int
}

// Option configures a Reader.
type Option func(*Reader)

// WithPattern sets the doublestar glob used for directories.
// Defaults to DefaultPattern if not specified.
func WithPattern(pattern string) Option {
	return func(r *Reader) {
		r.pattern = pattern
	}
}

// WithConcurrency sets the number of files decoded concurrently.
// Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) Option {
	return func(r *Reader) {
		r.concurrency = n
	}
}

// NewReader creates a new Reader. decoders maps lowercase file extensions
// (including the dot, e.g. ".js") to the decoder for that artifact type.
func NewReader(decoders map[string]doxsearch.Decoder, opts ...Option) *Reader {
	r := &Reader{
		decoders:    decoders,
		pattern:     DefaultPattern,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}
	return r
}

// Read implements doxsearch.SourceReader.
func (r *Reader) Read(ctx context.Context, location string) ([]doxsearch.TokenRecord, error) {
	info, err := os.Stat(location)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "index source %q not found", location)
	}
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return r.readFile(ctx, location)
	}

	paths, err := r.match(location)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "no index files match %q in %s", r.pattern, location)
	}

	results := make([][]doxsearch.TokenRecord, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			records, err := r.readFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []doxsearch.TokenRecord
	for _, records := range results {
		merged = append(merged, records...)
	}
	return merged, nil
}

// match returns the files under dir matching the reader's pattern, sorted.
func (r *Reader) match(dir string) ([]string, error) {
	if !doublestar.ValidatePattern(r.pattern) {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "invalid glob pattern %q", r.pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), r.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", r.pattern, dir, err)
	}
	sort.Strings(matches)

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return paths, nil
}

func (r *Reader) readFile(ctx context.Context, path string) ([]doxsearch.TokenRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := r.decoders[ext]
	if !ok {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "unsupported index file type %q", ext)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := dec.Decode(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}
