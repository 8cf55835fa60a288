package engine

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

// Rule is one entry of a field's configuration: either a named rule with
// its parameters, or an inline custom function.
type Rule struct {
	Name   string
	Params rules.Params
	Custom rules.CustomFunc
}

// Use configures the named registry rule with params.
func Use(name string, params rules.Params) Rule {
	return Rule{Name: name, Params: params}
}

// Custom configures an inline rule. name only identifies the entry; it is
// never looked up in the registry.
func Custom(name string, fn rules.CustomFunc) Rule {
	return Rule{Name: name, Custom: fn}
}

// IsCustom reports whether the rule is an inline function.
func (r Rule) IsCustom() bool {
	return r.Custom != nil
}

// FieldRules is the ordered rule set of one field. Rule names are unique
// within a field.
type FieldRules []Rule

// with returns rules with r appended, or replacing an earlier rule of the
// same name in place.
func (fr FieldRules) with(r Rule) FieldRules {
	for i := range fr {
		if fr[i].Name == r.Name {
			out := append(FieldRules(nil), fr...)
			out[i] = r
			return out
		}
	}
	return append(fr, r)
}

// Field pairs a field name with its rules.
type Field struct {
	Name  string
	Rules FieldRules
}

// ValidationConfig is the ordered mapping from field name to rules.
// The zero value is an empty configuration ready to use.
type ValidationConfig struct {
	fields []Field
	index  map[string]int
}

// NewConfig returns an empty configuration.
func NewConfig() *ValidationConfig {
	return &ValidationConfig{}
}

// Add sets the rules of field name. Adding a name that is already present
// replaces its rules without changing its position.
func (c *ValidationConfig) Add(name string, fieldRules ...Rule) *ValidationConfig {
	var fr FieldRules
	for _, r := range fieldRules {
		fr = fr.with(r)
	}

	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.fields[i].Rules = fr
		return c
	}
	c.index[name] = len(c.fields)
	c.fields = append(c.fields, Field{Name: name, Rules: fr})
	return c
}

// Fields returns the configured fields in insertion order.
func (c *ValidationConfig) Fields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Names returns the configured field names in insertion order.
func (c *ValidationConfig) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether name is configured.
func (c *ValidationConfig) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[name]
	return ok
}

// Rules returns the rules of field name.
func (c *ValidationConfig) Rules(name string) (FieldRules, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.fields[i].Rules, true
}

// Len returns the number of configured fields.
func (c *ValidationConfig) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Clone returns a copy that can be modified independently.
func (c *ValidationConfig) Clone() *ValidationConfig {
	out := NewConfig()
	if c == nil {
		return out
	}
	for _, f := range c.fields {
		out.Add(f.Name, f.Rules...)
	}
	return out
}

// UnmarshalYAML decodes a mapping of field name to a mapping of rule name to
// params, keeping document order:
//
//	login:
//	  notEmpty: { message: Username is required }
//	  length: { min: 3 }
func (c *ValidationConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*c = ValidationConfig{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping of field name to rules", node.Line)
	}

	parsed := ValidationConfig{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, rulesNode := node.Content[i], node.Content[i+1]

		fieldRules, err := decodeFieldRules(rulesNode)
		if err != nil {
			return fmt.Errorf("field %q: %w", keyNode.Value, err)
		}
		parsed.Add(keyNode.Value, fieldRules...)
	}

	*c = parsed
	return nil
}

func decodeFieldRules(node *yaml.Node) ([]Rule, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: rules must be a mapping of rule name to params", node.Line)
	}

	out := make([]Rule, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode, paramsNode := node.Content[i], node.Content[i+1]

		var params rules.Params
		if !(paramsNode.Kind == yaml.ScalarNode && paramsNode.Tag == "!!null") {
			if err := paramsNode.Decode(&params); err != nil {
				return nil, fmt.Errorf("rule %q: params must be a mapping: %w", nameNode.Value, err)
			}
		}
		out = append(out, Use(nameNode.Value, params))
	}
	return out, nil
}

// MarshalYAML encodes the configuration in the same shape UnmarshalYAML
// reads. Inline custom rules cannot be represented and are omitted.
func (c *ValidationConfig) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range c.Fields() {
		rulesNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, r := range f.Rules {
			if r.IsCustom() {
				continue
			}
			paramsNode := &yaml.Node{}
			params := r.Params
			if params == nil {
				params = rules.Params{}
			}
			if err := paramsNode.Encode(params); err != nil {
				return nil, fmt.Errorf("encoding %s.%s: %w", f.Name, r.Name, err)
			}
			rulesNode.Content = append(rulesNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Name},
				paramsNode,
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			rulesNode,
		)
	}
	return root, nil
}
