package mock

import (
	"context"

	"github.com/fwojciec/doxsearch"
)

var _ doxsearch.BuildService = (*BuildService)(nil)

// BuildService is a mock implementation of doxsearch.BuildService.
type BuildService struct {
	CreateBuildFn   func(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error
	ReplaceBuildFn  func(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error
	FindBuildByIDFn func(ctx context.Context, id string) (*doxsearch.Build, error)
	FindBuildsFn    func(ctx context.Context, filter doxsearch.BuildFilter) ([]*doxsearch.Build, error)
	FindRecordsFn   func(ctx context.Context, buildID string) ([]doxsearch.TokenRecord, error)
	DeleteBuildFn   func(ctx context.Context, id string) error
}

func (s *BuildService) CreateBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error {
	return s.CreateBuildFn(ctx, build, records)
}

func (s *BuildService) ReplaceBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error {
	return s.ReplaceBuildFn(ctx, build, records)
}

func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*doxsearch.Build, error) {
	return s.FindBuildByIDFn(ctx, id)
}

func (s *BuildService) FindBuilds(ctx context.Context, filter doxsearch.BuildFilter) ([]*doxsearch.Build, error) {
	return s.FindBuildsFn(ctx, filter)
}

func (s *BuildService) FindRecords(ctx context.Context, buildID string) ([]doxsearch.TokenRecord, error) {
	return s.FindRecordsFn(ctx, buildID)
}

func (s *BuildService) DeleteBuild(ctx context.Context, id string) error {
	return s.DeleteBuildFn(ctx, id)
}
