package source

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Records(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)

	db.MustExec(`CREATE TABLE users (login TEXT, age INTEGER, bio TEXT)`)
	db.MustExec(`INSERT INTO users (login, age, bio) VALUES ('ann', 42, NULL), ('bo', 7, 'hi')`)
	require.NoError(t, db.Close())

	src := &SQLite{Path: path, Query: "SELECT login, age, bio FROM users ORDER BY login"}
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "app.db row 1", records[0].Label)
	assert.Equal(t, map[string]string{"login": "ann", "age": "42", "bio": ""}, records[0].Values)
	assert.Equal(t, "hi", records[1].Values["bio"])
}

func TestSQLite_BadQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = (&SQLite{Path: path, Query: "SELECT * FROM missing"}).Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running query")
}
