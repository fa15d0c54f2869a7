package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/doxsearch"
)

const buildColumns = `id, name, source, content_hash, record_count, entry_count, created_at`

// buildQuery returns the SELECT statement and arguments for filter.
// Builds are ordered by name; Limit and Offset apply only when positive.
func buildQuery(filter doxsearch.BuildFilter) (string, []any) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + buildColumns + " FROM builds WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	query.WriteString(" ORDER BY name ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			// SQLite requires LIMIT before OFFSET.
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	return query.String(), args
}

type scanner interface {
	Scan(dest ...any) error
}

// scanBuild reads one row selected with buildColumns.
func scanBuild(row scanner) (*doxsearch.Build, error) {
	var b doxsearch.Build
	var createdAt string
	if err := row.Scan(&b.ID, &b.Name, &b.Source, &b.ContentHash,
		&b.RecordCount, &b.EntryCount, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of build %s: %w", b.ID, err)
	}
	b.CreatedAt = t
	return &b, nil
}
