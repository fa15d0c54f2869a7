package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/doxsearch"
)

// Ensure LoggingBuildService implements doxsearch.BuildService.
var _ doxsearch.BuildService = (*LoggingBuildService)(nil)

// LoggingBuildService wraps a BuildService with logging.
type LoggingBuildService struct {
	next   doxsearch.BuildService
	logger *slog.Logger
}

// NewLoggingBuildService creates a new LoggingBuildService.
func NewLoggingBuildService(next doxsearch.BuildService, logger *slog.Logger) *LoggingBuildService {
	return &LoggingBuildService{next: next, logger: logger}
}

func (s *LoggingBuildService) CreateBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create build",
			"name", build.Name,
			"id", build.ID,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateBuild(ctx, build, records)
}

func (s *LoggingBuildService) ReplaceBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace build",
			"name", build.Name,
			"id", build.ID,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceBuild(ctx, build, records)
}

func (s *LoggingBuildService) FindBuildByID(ctx context.Context, id string) (build *doxsearch.Build, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find build",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBuildByID(ctx, id)
}

func (s *LoggingBuildService) FindBuilds(ctx context.Context, filter doxsearch.BuildFilter) (builds []*doxsearch.Build, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find builds",
			"count", len(builds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBuilds(ctx, filter)
}

func (s *LoggingBuildService) FindRecords(ctx context.Context, buildID string) (records []doxsearch.TokenRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"build", buildID,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, buildID)
}

func (s *LoggingBuildService) DeleteBuild(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete build",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteBuild(ctx, id)
}
