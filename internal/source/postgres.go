package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Postgres runs Query against a PostgreSQL database and returns one record
// per row, keyed by column name.
type Postgres struct {
	DSN   string
	Query string
	Args  []any
}

func (p *Postgres) Records(ctx context.Context) ([]Record, error) {
	connConfig, err := pgx.ParseConfig(p.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, p.Query, p.Args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	label := connConfig.Database
	if label == "" {
		label = "postgres"
	}

	var records []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		records = append(records, rowRecord(label, len(records)+1, columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return records, nil
}
