package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
)

func TestParseEnv(t *testing.T) {
	content := `# database
DB_HOST=localhost
export APP_NAME="fieldcheck"
QUOTED='single'
EMPTY=
URL=postgres://u:p@h/db?x=1
GREETING="hello ${APP_NAME}"
DB_HOST=override
`
	env, err := ParseEnv(content)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"DB_HOST":  "override",
		"APP_NAME": "fieldcheck",
		"QUOTED":   "single",
		"EMPTY":    "",
		"URL":      "postgres://u:p@h/db?x=1",
		"GREETING": "hello fieldcheck",
	}, env)
}

func TestEnvFile_Records(t *testing.T) {
	t.Run("reads one record labelled with the path", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/app/.env", []byte("login=admin\npassword=secret\n"), 0644)

		records, err := (&EnvFile{FS: mockFS, Path: "/app/.env"}).Records(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "/app/.env", records[0].Label)
		assert.Equal(t, "admin", records[0].Values["login"])
		assert.Equal(t, []string{"login", "password"}, records[0].Keys())
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := (&EnvFile{FS: fs.NewMockFS(), Path: "/nope/.env"}).Records(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading env file")
	})
}

func TestYAMLFile_Records(t *testing.T) {
	t.Run("mapping is a single record", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/data/user.yaml", []byte("login: admin\nage: 42\nnickname: ~\n"), 0644)

		records, err := (&YAMLFile{FS: mockFS, Path: "/data/user.yaml"}).Records(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, map[string]string{"login": "admin", "age": "42", "nickname": ""}, records[0].Values)
	})

	t.Run("sequence yields one record per item", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/data/users.yaml", []byte("- login: ann\n- login: bo\n"), 0644)

		records, err := (&YAMLFile{FS: mockFS, Path: "/data/users.yaml"}).Records(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "/data/users.yaml#1", records[0].Label)
		assert.Equal(t, "bo", records[1].Values["login"])
	})

	t.Run("empty document has no records", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/data/empty.yaml", []byte(""), 0644)

		records, err := (&YAMLFile{FS: mockFS, Path: "/data/empty.yaml"}).Records(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("nested values are rejected", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/data/bad.yaml", []byte("login:\n  first: a\n"), 0644)

		_, err := (&YAMLFile{FS: mockFS, Path: "/data/bad.yaml"}).Records(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "login" must be a scalar`)
	})

	t.Run("scalar document is rejected", func(t *testing.T) {
		mockFS := fs.NewMockFS()
		mockFS.AddFile("/data/scalar.yaml", []byte("just text\n"), 0644)

		_, err := (&YAMLFile{FS: mockFS, Path: "/data/scalar.yaml"}).Records(context.Background())
		require.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	mockFS := fs.NewMockFS()

	tests := []struct {
		name    string
		spec    Spec
		want    any
		wantErr string
	}{
		{name: "env", spec: Spec{Kind: "env", Path: ".env"}, want: &EnvFile{}},
		{name: "yml alias", spec: Spec{Kind: "YML", Path: "a.yml"}, want: &YAMLFile{}},
		{name: "postgres", spec: Spec{Kind: "postgres", DSN: "postgres://localhost/app", Query: "select 1"}, want: &Postgres{}},
		{name: "mysql", spec: Spec{Kind: "mysql", DSN: "u:p@tcp(localhost)/app", Query: "select 1"}, want: &MySQL{}},
		{name: "json", spec: Spec{Kind: "json", Path: "users.json"}, want: &JSONFile{}},
		{name: "sqlite", spec: Spec{Kind: "sqlite", Path: "app.db", Query: "select 1"}, want: &SQLite{}},
		{name: "sqlite without query", spec: Spec{Kind: "sqlite", Path: "app.db"}, wantErr: "path and query are required"},
		{name: "env without path", spec: Spec{Kind: "env"}, wantErr: "path is required"},
		{name: "postgres without query", spec: Spec{Kind: "postgres", DSN: "x"}, wantErr: "dsn and query are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(tt.spec, mockFS)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Open(Spec{Kind: "csv"}, mockFS)
		assert.True(t, errors.Is(err, fcerrors.ErrUnsupportedSource))
	})
}

func TestKindFromPath(t *testing.T) {
	tests := map[string]string{
		"users.yaml":        KindYAML,
		"dir/users.YML":     KindYAML,
		".env":              KindEnv,
		"config/.env.local": KindEnv,
		"prod.env":          KindEnv,
		"users.json":        KindJSON,
		"data.csv":          "",
	}
	for path, want := range tests {
		got, ok := KindFromPath(path)
		assert.Equal(t, want, got, path)
		assert.Equal(t, want != "", ok, path)
	}
}

func TestRowRecord(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := rowRecord("app", 3, []string{"login", "age", "bio", "created", "raw", "missing"},
		[]any{"ann", int64(42), nil, created, []byte("bytes")})

	assert.Equal(t, "app row 3", rec.Label)
	assert.Equal(t, map[string]string{
		"login":   "ann",
		"age":     "42",
		"bio":     "",
		"created": "2024-03-01T12:00:00Z",
		"raw":     "bytes",
		"missing": "",
	}, rec.Values)
}

func TestSpec_IsDatabase(t *testing.T) {
	assert.True(t, Spec{Kind: KindPostgres}.IsDatabase())
	assert.True(t, Spec{Kind: KindMySQL}.IsDatabase())
	assert.True(t, Spec{Kind: KindSQLite}.IsDatabase())
	assert.False(t, Spec{Kind: KindEnv}.IsDatabase())
	assert.False(t, Spec{Kind: KindJSON}.IsDatabase())
}

func TestMapRecord(t *testing.T) {
	rec := mapRecord("app.db", 1, map[string]any{"login": []byte("ann"), "age": int64(7), "bio": nil})
	assert.Equal(t, "app.db row 1", rec.Label)
	assert.Equal(t, map[string]string{"login": "ann", "age": "7", "bio": ""}, rec.Values)
}
