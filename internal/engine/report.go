package engine

import (
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/form"
)

// ErrorEntry holds the failures of one field from one validation pass.
type ErrorEntry struct {
	Name string
	// Field is the handle the messages are rendered against. It is nil when
	// the field could not be resolved.
	Field    form.Field
	Messages []string
}

// ErrorReport maps field names to their failures, in configuration order.
// An empty report means the form is valid.
type ErrorReport struct {
	entries []ErrorEntry
	index   map[string]int
}

func (r *ErrorReport) add(name string, field form.Field, message string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	i, ok := r.index[name]
	if !ok {
		i = len(r.entries)
		r.index[name] = i
		r.entries = append(r.entries, ErrorEntry{Name: name, Field: field})
	}
	r.entries[i].Messages = append(r.entries[i].Messages, message)
}

// IsEmpty reports whether no field failed.
func (r ErrorReport) IsEmpty() bool {
	return len(r.entries) == 0
}

// Len returns the number of failing fields.
func (r ErrorReport) Len() int {
	return len(r.entries)
}

// Has reports whether name failed at least one rule.
func (r ErrorReport) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the entry for name.
func (r ErrorReport) Get(name string) (ErrorEntry, bool) {
	i, ok := r.index[name]
	if !ok {
		return ErrorEntry{}, false
	}
	return r.entries[i], true
}

// Messages returns the failure messages of name, or nil.
func (r ErrorReport) Messages(name string) []string {
	entry, ok := r.Get(name)
	if !ok {
		return nil
	}
	return entry.Messages
}

// Fields returns the failing field names in configuration order.
func (r ErrorReport) Fields() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns every entry in configuration order.
func (r ErrorReport) Entries() []ErrorEntry {
	return r.Clone().entries
}

// Clone returns a deep copy of the report.
func (r ErrorReport) Clone() ErrorReport {
	out := ErrorReport{
		entries: make([]ErrorEntry, len(r.entries)),
		index:   make(map[string]int, len(r.index)),
	}
	for i, e := range r.entries {
		out.entries[i] = ErrorEntry{
			Name:     e.Name,
			Field:    e.Field,
			Messages: append([]string(nil), e.Messages...),
		}
		out.index[e.Name] = i
	}
	return out
}

// MarshalYAML encodes the report as an ordered mapping of field name to
// message list.
func (r ErrorReport) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r.entries {
		messages := &yaml.Node{Kind: yaml.SequenceNode}
		for _, m := range e.Messages {
			messages.Content = append(messages.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			messages,
		)
	}
	return root, nil
}
