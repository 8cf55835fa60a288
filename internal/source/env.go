package source

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/artisanexperiences/fieldcheck/internal/fs"
)

// EnvFile reads a dotenv file as a single record.
type EnvFile struct {
	FS   fs.FS
	Path string
}

func (e *EnvFile) Records(_ context.Context) ([]Record, error) {
	fsys := e.FS
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := fsys.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	values, err := ParseEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", e.Path, err)
	}
	return []Record{{Label: e.Path, Values: values}}, nil
}

// ParseEnv parses dotenv content. Comments, export prefixes, quoting and
// ${VAR} references within the file are handled by godotenv.
func ParseEnv(content string) (map[string]string, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, err
	}
	return values, nil
}
