package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/doxsearch"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ doxsearch.BuildService = (*BuildService)(nil)

// BuildService implements doxsearch.BuildService using SQLite.
type BuildService struct {
	db *DB
}

// NewBuildService creates a new BuildService.
func NewBuildService(db *DB) *BuildService {
	return &BuildService{db: db}
}

// CreateBuild validates records and stores them with the build in one
// transaction. Keys are stored lowercased and in key order.
func (s *BuildService) CreateBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error {
	return s.storeBuild(ctx, build, records, false)
}

// ReplaceBuild is like CreateBuild but first removes any build with the
// same name, in the same transaction. A failed replace leaves the existing
// build untouched.
func (s *BuildService) ReplaceBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord) error {
	return s.storeBuild(ctx, build, records, true)
}

func (s *BuildService) storeBuild(ctx context.Context, build *doxsearch.Build, records []doxsearch.TokenRecord, replace bool) error {
	if err := build.Validate(); err != nil {
		return err
	}

	store, err := doxsearch.LoadRecords(records)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM builds WHERE name = ?", build.Name); err != nil {
			return err
		}
	} else {
		var exists int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM builds WHERE name = ?", build.Name).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return doxsearch.Errorf(doxsearch.ECONFLICT, "build %q already exists", build.Name)
		}
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, name, source, content_hash, record_count, entry_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, build.Name, build.Source, store.Fingerprint(), store.Len(), store.EntryCount(),
		createdAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return doxsearch.Errorf(doxsearch.ECONFLICT, "build %q already exists", build.Name)
	}
	if err != nil {
		return err
	}

	recordStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (build_id, key, display_label) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer recordStmt.Close()

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (record_id, position, label, page, parent_label, parent_frame)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for r := range store.Records() {
		res, err := recordStmt.ExecContext(ctx, id, r.Key, r.DisplayLabel)
		if err != nil {
			return err
		}
		recordID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for pos, e := range r.Entries {
			if _, err := entryStmt.ExecContext(ctx, recordID, pos, e.Label, e.Page, e.ParentLabel, e.ParentFrame); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	build.ID = id
	build.ContentHash = store.Fingerprint()
	build.RecordCount = store.Len()
	build.EntryCount = store.EntryCount()
	build.CreatedAt = createdAt
	return nil
}

// FindBuildByID retrieves a build by ID.
func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*doxsearch.Build, error) {
	builds, err := s.FindBuilds(ctx, doxsearch.BuildFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "build not found")
	}
	return builds[0], nil
}

// FindBuilds retrieves builds matching the filter, ordered by name.
func (s *BuildService) FindBuilds(ctx context.Context, filter doxsearch.BuildFilter) ([]*doxsearch.Build, error) {
	query, args := buildQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []*doxsearch.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}

	return builds, rows.Err()
}

// FindRecords retrieves the records of a build ordered by key, with entries
// in their stored order.
func (s *BuildService) FindRecords(ctx context.Context, buildID string) ([]doxsearch.TokenRecord, error) {
	if _, err := s.FindBuildByID(ctx, buildID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.key, r.display_label, e.label, e.page, e.parent_label, e.parent_frame
		FROM records r
		JOIN entries e ON e.record_id = r.id
		WHERE r.build_id = ?
		ORDER BY r.key ASC, e.position ASC
	`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []doxsearch.TokenRecord
	lastID := int64(-1)
	for rows.Next() {
		var recordID int64
		var key, display string
		var e doxsearch.Entry
		if err := rows.Scan(&recordID, &key, &display, &e.Label, &e.Page, &e.ParentLabel, &e.ParentFrame); err != nil {
			return nil, err
		}
		if recordID != lastID {
			records = append(records, doxsearch.TokenRecord{Key: key, DisplayLabel: display})
			lastID = recordID
		}
		last := &records[len(records)-1]
		last.Entries = append(last.Entries, e)
	}

	return records, rows.Err()
}

// DeleteBuild permanently removes a build and its records.
func (s *BuildService) DeleteBuild(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM builds WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return doxsearch.Errorf(doxsearch.ENOTFOUND, "build not found")
	}

	return nil
}
