// Package source produces field values for batch checks. Each Record holds
// one set of values keyed by field name, ready to load into a form.Memory.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
)

// Source kinds accepted by Open.
const (
	KindEnv      = "env"
	KindYAML     = "yaml"
	KindJSON     = "json"
	KindPostgres = "postgres"
	KindMySQL    = "mysql"
	KindSQLite   = "sqlite"
)

// Record is one set of field values.
type Record struct {
	// Label identifies the record in output, for example "users.yaml#2".
	Label  string
	Values map[string]string
}

// Keys returns the record's field names, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source loads records.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Spec describes a source in fieldcheck.yaml.
type Spec struct {
	Kind  string `mapstructure:"kind" yaml:"kind,omitempty"`
	Path  string `mapstructure:"path" yaml:"path,omitempty"`
	DSN   string `mapstructure:"dsn" yaml:"dsn,omitempty"`
	Query string `mapstructure:"query" yaml:"query,omitempty"`
}

// IsDatabase reports whether the source runs a query.
func (s Spec) IsDatabase() bool {
	switch strings.ToLower(s.Kind) {
	case KindPostgres, "postgresql", "pgsql", KindMySQL, KindSQLite, "sqlite3":
		return true
	}
	return false
}

// Open returns the Source described by spec. File sources read through fsys.
func Open(spec Spec, fsys fs.FS) (Source, error) {
	switch strings.ToLower(spec.Kind) {
	case KindEnv:
		if spec.Path == "" {
			return nil, fmt.Errorf("env source: path is required")
		}
		return &EnvFile{FS: fsys, Path: spec.Path}, nil
	case KindYAML, "yml":
		if spec.Path == "" {
			return nil, fmt.Errorf("yaml source: path is required")
		}
		return &YAMLFile{FS: fsys, Path: spec.Path}, nil
	case KindJSON:
		if spec.Path == "" {
			return nil, fmt.Errorf("json source: path is required")
		}
		return &JSONFile{FS: fsys, Path: spec.Path}, nil
	case KindPostgres, "postgresql", "pgsql":
		if spec.DSN == "" || spec.Query == "" {
			return nil, fmt.Errorf("postgres source: dsn and query are required")
		}
		return &Postgres{DSN: spec.DSN, Query: spec.Query}, nil
	case KindMySQL:
		if spec.DSN == "" || spec.Query == "" {
			return nil, fmt.Errorf("mysql source: dsn and query are required")
		}
		return &MySQL{DSN: spec.DSN, Query: spec.Query}, nil
	case KindSQLite, "sqlite3":
		if spec.Path == "" || spec.Query == "" {
			return nil, fmt.Errorf("sqlite source: path and query are required")
		}
		return &SQLite{Path: spec.Path, Query: spec.Query}, nil
	default:
		return nil, fmt.Errorf("%w: %q", fcerrors.ErrUnsupportedSource, spec.Kind)
	}
}

// KindFromPath guesses a file source kind from a file name.
func KindFromPath(path string) (string, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return KindYAML, true
	case strings.HasSuffix(base, ".json"):
		return KindJSON, true
	case strings.HasPrefix(base, ".env"), strings.HasSuffix(base, ".env"):
		return KindEnv, true
	default:
		return "", false
	}
}

// rowRecord builds a record from one result row.
func rowRecord(label string, index int, columns []string, values []any) Record {
	rec := Record{
		Label:  fmt.Sprintf("%s row %d", label, index),
		Values: make(map[string]string, len(columns)),
	}
	for i, col := range columns {
		if i >= len(values) {
			rec.Values[col] = ""
			continue
		}
		rec.Values[col] = stringify(values[i])
	}
	return rec
}

// mapRecord builds a record from a row scanned into a map.
func mapRecord(label string, index int, row map[string]any) Record {
	rec := Record{
		Label:  fmt.Sprintf("%s row %d", label, index),
		Values: make(map[string]string, len(row)),
	}
	for col, v := range row {
		rec.Values[col] = stringify(v)
	}
	return rec
}

// stringify renders a scanned column value the way it would be typed into
// a form. NULL becomes the empty string.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
