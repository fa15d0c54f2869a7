// Package slog provides logging decorators for doxsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/doxsearch"
)

// Ensure LoggingSourceReader implements doxsearch.SourceReader.
var _ doxsearch.SourceReader = (*LoggingSourceReader)(nil)

// LoggingSourceReader wraps a SourceReader with logging.
type LoggingSourceReader struct {
	next   doxsearch.SourceReader
	logger *slog.Logger
}

// NewLoggingSourceReader creates a new LoggingSourceReader.
func NewLoggingSourceReader(next doxsearch.SourceReader, logger *slog.Logger) *LoggingSourceReader {
	return &LoggingSourceReader{next: next, logger: logger}
}

// Read delegates to the wrapped reader and logs the operation.
func (r *LoggingSourceReader) Read(ctx context.Context, location string) (records []doxsearch.TokenRecord, err error) {
	defer func(begin time.Time) {
		r.logger.Info("read index",
			"location", location,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Read(ctx, location)
}
