package source

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/fs"
)

// YAMLFile reads records from a YAML document. A top-level mapping is one
// record; a sequence of mappings yields one record per item.
type YAMLFile struct {
	FS   fs.FS
	Path string
}

func (y *YAMLFile) Records(_ context.Context) ([]Record, error) {
	fsys := y.FS
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := fsys.ReadFile(y.Path)
	if err != nil {
		return nil, fmt.Errorf("reading yaml file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.Path, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		values, err := mappingValues(root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", y.Path, err)
		}
		return []Record{{Label: y.Path, Values: values}}, nil
	case yaml.SequenceNode:
		records := make([]Record, 0, len(root.Content))
		for i, item := range root.Content {
			values, err := mappingValues(item)
			if err != nil {
				return nil, fmt.Errorf("%s item %d: %w", y.Path, i+1, err)
			}
			records = append(records, Record{
				Label:  fmt.Sprintf("%s#%d", y.Path, i+1),
				Values: values,
			})
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%s: line %d: expected a mapping or a list of mappings", y.Path, root.Line)
	}
}

// mappingValues flattens a mapping of scalars. Null becomes the empty string.
func mappingValues(node *yaml.Node) (map[string]string, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	values := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: field %q must be a scalar", val.Line, key.Value)
		}
		if val.Tag == "!!null" {
			values[key.Value] = ""
			continue
		}
		values[key.Value] = val.Value
	}
	return values, nil
}
