package mock

import (
	"context"

	"github.com/fwojciec/doxsearch"
)

// Compile-time interface verification.
var (
	_ doxsearch.SourceReader   = (*SourceReader)(nil)
	_ doxsearch.LabelFormatter = (*LabelFormatter)(nil)
	_ doxsearch.Decoder        = (*Decoder)(nil)
)

// SourceReader is a mock implementation of doxsearch.SourceReader.
type SourceReader struct {
	ReadFn func(ctx context.Context, location string) ([]doxsearch.TokenRecord, error)
}

func (r *SourceReader) Read(ctx context.Context, location string) ([]doxsearch.TokenRecord, error) {
	return r.ReadFn(ctx, location)
}

// LabelFormatter is a mock implementation of doxsearch.LabelFormatter.
type LabelFormatter struct {
	FormatLabelFn func(label string) (string, error)
}

func (f *LabelFormatter) FormatLabel(label string) (string, error) {
	return f.FormatLabelFn(label)
}

// Decoder is a mock implementation of doxsearch.Decoder.
type Decoder struct {
	DecodeFn func(ctx context.Context, src []byte) ([]doxsearch.TokenRecord, error)
}

func (d *Decoder) Decode(ctx context.Context, src []byte) ([]doxsearch.TokenRecord, error) {
	return d.DecodeFn(ctx, src)
}
