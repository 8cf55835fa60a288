package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// MySQL runs Query against a MySQL database and returns one record per row,
// keyed by column name.
type MySQL struct {
	DSN   string
	Query string
	Args  []any
}

func (m *MySQL) Records(ctx context.Context) ([]Record, error) {
	cfg, err := mysql.ParseDSN(m.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing mysql dsn: %w", err)
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring mysql: %w", err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")
	defer db.Close()

	label := cfg.DBName
	if label == "" {
		label = "mysql"
	}
	return queryRecords(ctx, db, label, m.Query, m.Args)
}
