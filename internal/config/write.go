package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

// Starter returns a configuration that requires each of names.
func Starter(names []string) *Config {
	fields := engine.NewConfig()
	for _, name := range names {
		fields.Add(name, engine.Use(rules.NotEmpty, rules.Params{
			rules.MessageKey: fmt.Sprintf("%s is required", name),
		}))
	}
	return &Config{Fields: fields}
}

// SaveProject writes config to fieldcheck.yaml in dir. An existing file is
// edited in place: keys config sets are replaced, everything else (comments,
// unrelated keys, ordering) is kept.
func SaveProject(fsys fs.FS, dir string, config *Config) error {
	configPath := filepath.Join(dir, FileName)

	var doc yaml.Node
	if content, err := fsys.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		root = doc.Content[0]
	}

	if config.DefaultErrorMessage != "" {
		setKey(root, "default_error_message", scalar(config.DefaultErrorMessage))
	}
	if config.Output != "" {
		setKey(root, "output", scalar(config.Output))
	}
	if config.Title != "" {
		setKey(root, "title", scalar(config.Title))
	}
	if len(config.Secret) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, s := range config.Secret {
			seq.Content = append(seq.Content, scalar(s))
		}
		setKey(root, "secret", seq)
	}
	if config.Source.Kind != "" {
		node := &yaml.Node{}
		if err := node.Encode(config.Source); err != nil {
			return fmt.Errorf("encoding source: %w", err)
		}
		setKey(root, "source", node)
	}
	if config.Fields.Len() > 0 {
		node := &yaml.Node{}
		if err := node.Encode(config.Fields); err != nil {
			return fmt.Errorf("encoding fields: %w", err)
		}
		setKey(root, "fields", node)
	}

	out := root
	if len(doc.Content) > 0 && doc.Content[0] == root {
		out = &doc
	}
	content, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := fsys.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// setKey replaces the value of key in mapping, or appends it.
func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content, scalar(key), value)
}
