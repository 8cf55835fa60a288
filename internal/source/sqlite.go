package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite runs Query against the database file at Path and returns one
// record per row, keyed by column name.
type SQLite struct {
	Path  string
	Query string
	Args  []any
}

func (s *SQLite) Records(ctx context.Context) ([]Record, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	return queryRecords(ctx, db, filepath.Base(s.Path), s.Query, s.Args)
}
