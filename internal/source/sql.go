package source

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// queryRecords runs query on db and returns one record per row.
func queryRecords(ctx context.Context, db *sqlx.DB, label, query string, args []any) ([]Record, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		records = append(records, mapRecord(label, len(records)+1, row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return records, nil
}
