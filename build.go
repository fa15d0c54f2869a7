package doxsearch

import (
	"context"
	"time"
)

// Build represents a persisted snapshot of one documentation build's index.
type Build struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	RecordCount int       `json:"recordCount"`
	EntryCount  int       `json:"entryCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the build contains invalid fields.
func (b *Build) Validate() error {
	if b.Name == "" {
		return Errorf(EINVALID, "build name required")
	}
	if b.Source == "" {
		return Errorf(EINVALID, "build source required")
	}
	return nil
}

// BuildService represents a service for managing persisted builds.
type BuildService interface {
	// CreateBuild stores a build together with its records.
	// Returns ECONFLICT if a build with the same name exists.
	CreateBuild(ctx context.Context, build *Build, records []TokenRecord) error

	// ReplaceBuild stores a build together with its records, atomically
	// removing any existing build with the same name.
	ReplaceBuild(ctx context.Context, build *Build, records []TokenRecord) error

	// FindBuildByID retrieves a build by ID.
	// Returns ENOTFOUND if build does not exist.
	FindBuildByID(ctx context.Context, id string) (*Build, error)

	// FindBuilds retrieves builds matching the filter.
	FindBuilds(ctx context.Context, filter BuildFilter) ([]*Build, error)

	// FindRecords retrieves the records of a build ordered by key, with
	// entries in their original order.
	// Returns ENOTFOUND if build does not exist.
	FindRecords(ctx context.Context, buildID string) ([]TokenRecord, error)

	// DeleteBuild permanently removes a build and its records.
	// Returns ENOTFOUND if build does not exist.
	DeleteBuild(ctx context.Context, id string) error
}

// BuildFilter represents a filter for FindBuilds.
type BuildFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceReader reads the records of a search index from a location.
// Implementations hide whether the location is a directory, a single
// artifact file, or a published documentation site.
type SourceReader interface {
	Read(ctx context.Context, location string) ([]TokenRecord, error)
}

// Decoder converts the bytes of one index artifact into records.
type Decoder interface {
	Decode(ctx context.Context, src []byte) ([]TokenRecord, error)
}

// Fetcher retrieves raw artifact bytes from URLs.
type Fetcher interface {
	// Fetch returns the body of the resource at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
