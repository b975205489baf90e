package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ColorUsageReport is one row of the catalog usage report: the maintained
// counters next to the live reference counts actually present in the tables.
// A mismatch between UsageCount and AnnotationRefs+EntryRefs indicates
// counter drift (a missed accounting call somewhere upstream).
type ColorUsageReport struct {
	ColorID        int64  `json:"color_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Manufacturer   string `json:"manufacturer"`
	UsageCount     int64  `json:"usage_count"`
	FirstUsedAt    *int64 `json:"first_used_at,omitempty"`
	AnnotationRefs int64  `json:"annotation_refs"`
	EntryRefs      int64  `json:"entry_refs"`
}

// Drift reports the difference between the maintained counter and the live
// reference count; zero means the accounting invariant holds for this color.
func (r ColorUsageReport) Drift() int64 {
	return r.UsageCount - (r.AnnotationRefs + r.EntryRefs)
}

// GetColorUsageReport builds the per-color usage report over the raw
// connection. Read-only; used by the colors report endpoint and by integrity
// checks behind underflow warnings.
func GetColorUsageReport(db *sql.DB) ([]ColorUsageReport, error) {
	queryBuilder := psql.Select(
		"c.id", "c.code", "c.name", "c.manufacturer", "c.usage_count", "c.first_used_at",
		"(SELECT COUNT(*) FROM annotations a WHERE a.color_id = c.id) AS annotation_refs",
		"(SELECT COUNT(*) FROM synopsis_entries e WHERE e.color_id = c.id) AS entry_refs",
	).
		From("catalog_colors c").
		OrderBy("c.usage_count DESC", "c.code ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetColorUsageReport: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetColorUsageReport query: %w", err)
	}
	defer rows.Close()

	var reports []ColorUsageReport
	for rows.Next() {
		var r ColorUsageReport
		if err := rows.Scan(&r.ColorID, &r.Code, &r.Name, &r.Manufacturer, &r.UsageCount, &r.FirstUsedAt, &r.AnnotationRefs, &r.EntryRefs); err != nil {
			return nil, fmt.Errorf("failed to scan color usage report row: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating color usage report rows: %w", err)
	}
	return reports, nil
}
