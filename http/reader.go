package http

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/doxsearch"
	"github.com/fwojciec/doxsearch/doxygen"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of search scripts fetched at once.
const DefaultConcurrency = 4

// Ensure Reader implements doxsearch.SourceReader at compile time.
var _ doxsearch.SourceReader = (*Reader)(nil)

// Reader reads the search index of a published Doxygen site. The location
// is the URL of the site's search/ directory; searchdata.js is fetched first
// to learn which all_<n>.js scripts exist. A location naming a single
// artifact whose extension has a registered decoder is fetched and decoded
// directly.
type Reader struct {
	fetcher     doxsearch.Fetcher
	parser      *doxygen.Parser
	decoders    map[string]doxsearch.Decoder
	section     string
	concurrency int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithConcurrency sets the number of scripts fetched concurrently.
// Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) ReaderOption {
	return func(r *Reader) {
		r.concurrency = n
	}
}

// WithSection selects the index section to read. Defaults to "all", which
// holds every symbol once.
func WithSection(name string) ReaderOption {
	return func(r *Reader) {
		r.section = name
	}
}

// WithDecoders registers decoders for single-artifact URLs, keyed by
// lowercase extension including the dot.
func WithDecoders(decoders map[string]doxsearch.Decoder) ReaderOption {
	return func(r *Reader) {
		r.decoders = decoders
	}
}

// NewReader creates a new Reader.
func NewReader(fetcher doxsearch.Fetcher, parser *doxygen.Parser, opts ...ReaderOption) *Reader {
	r := &Reader{
		fetcher:     fetcher,
		parser:      parser,
		section:     "all",
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
	base, err := url.Parse(location)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "invalid index URL %q", location)
	}

	if dec, ok := r.decoders[strings.ToLower(path.Ext(base.Path))]; ok {
		return r.readArtifact(ctx, base.String(), dec)
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	src, err := r.fetcher.Fetch(ctx, base.JoinPath("searchdata.js").String())
	if err != nil {
		return nil, fmt.Errorf("fetch search data: %w", err)
	}
	sections, err := r.parser.Sections(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("searchdata.js: %w", err)
	}
	section, ok := doxygen.FindSection(sections, r.section)
	if !ok {
		return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "search section %q not found", r.section)
	}

	files := section.Files()
	results := make([][]doxsearch.TokenRecord, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, name := range files {
		g.Go(func() error {
			records, err := r.readArtifact(gctx, base.JoinPath(name).String(), r.parser)
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

func (r *Reader) readArtifact(ctx context.Context, rawURL string, dec doxsearch.Decoder) ([]doxsearch.TokenRecord, error) {
	src, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	records, err := dec.Decode(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path.Base(rawURL), err)
	}
	return records, nil
}
