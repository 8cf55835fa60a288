// Package config loads and writes fieldcheck.yaml.
//
// Scalar settings are read through viper so they can be overridden from the
// environment (FIELDCHECK_OUTPUT, FIELDCHECK_SOURCE_DSN, ...). The fields
// section is decoded with yaml.v3 because rule order is significant and
// field names are case sensitive, neither of which viper preserves.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
	"github.com/artisanexperiences/fieldcheck/internal/source"
)

// FileName is the project configuration file name.
const FileName = "fieldcheck.yaml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "FIELDCHECK"

// Output formats for check results.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config represents the project configuration.
type Config struct {
	DefaultErrorMessage string      `mapstructure:"default_error_message"`
	Output              string      `mapstructure:"output"`
	Title               string      `mapstructure:"title"`
	Secret              []string    `mapstructure:"secret"`
	Source              source.Spec `mapstructure:"source"`

	// Fields is decoded separately to keep document order.
	Fields *engine.ValidationConfig `mapstructure:"-"`

	// Path is the file the configuration was loaded from.
	Path string `mapstructure:"-"`
}

// IsSecret reports whether field input should be masked.
func (c *Config) IsSecret(field string) bool {
	for _, s := range c.Secret {
		if s == field {
			return true
		}
	}
	return false
}

// EngineOptions returns engine options for this configuration.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Config:              c.Fields,
		DefaultErrorMessage: c.DefaultErrorMessage,
	}
}

type fieldsDocument struct {
	Fields engine.ValidationConfig `yaml:"fields"`
}

// Resolve returns the configuration file path for path, which may name the
// file itself or the directory holding it.
func Resolve(fsys fs.FS, path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w in %s", fcerrors.ErrConfigNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	configPath := filepath.Join(path, FileName)
	ok, err := fs.Exists(fsys, configPath)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", configPath, err)
	}
	if !ok {
		return "", fmt.Errorf("%w in %s", fcerrors.ErrConfigNotFound, path)
	}
	return configPath, nil
}

// LoadProject loads fieldcheck.yaml from path (a file or its directory).
func LoadProject(fsys fs.FS, path string) (*Config, error) {
	configPath, err := Resolve(fsys, path)
	if err != nil {
		return nil, err
	}

	content, err := fsys.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	cfg.Path = configPath

	if cfg.Source.Path != "" && !filepath.IsAbs(cfg.Source.Path) {
		cfg.Source.Path = filepath.Join(filepath.Dir(configPath), cfg.Source.Path)
	}
	return cfg, nil
}

// Parse decodes configuration content and applies environment overrides.
func Parse(content []byte) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	var doc fieldsDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing fields: %w", err)
	}
	if doc.Fields.Len() == 0 {
		return nil, fcerrors.ErrNoFields
	}
	config.Fields = &doc.Fields

	switch config.Output {
	case OutputText, OutputYAML:
	default:
		return nil, fmt.Errorf("parsing config: unknown output %q (want %s or %s)", config.Output, OutputText, OutputYAML)
	}
	return &config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys need a default for AutomaticEnv to reach them through Unmarshal.
	v.SetDefault("default_error_message", engine.DefaultErrorMessage)
	v.SetDefault("output", OutputText)
	v.SetDefault("title", "")
	v.SetDefault("secret", []string{})
	v.SetDefault("source.kind", "")
	v.SetDefault("source.path", "")
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.query", "")
	return v
}
