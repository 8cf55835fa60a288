package form

import (
	"sort"
	"sync"
)

// Memory is a Form backed by in-memory values. It records what was rendered
// so callers can inspect the outcome of a validation pass.
type Memory struct {
	mu       sync.Mutex
	fields   map[string]*MemoryField
	rendered map[string]ErrorBlock
	clears   int
}

// NewMemory returns a form with one field per entry of values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{
		fields:   make(map[string]*MemoryField),
		rendered: make(map[string]ErrorBlock),
	}
	for name, value := range values {
		m.Add(name, value)
	}
	return m
}

// Add creates or replaces the field name with the given value.
func (m *Memory) Add(name, value string) *MemoryField {
	f := &MemoryField{name: name, value: value, form: m}
	m.mu.Lock()
	m.fields[name] = f
	m.mu.Unlock()
	return f
}

// Field implements Form.
func (m *Memory) Field(name string) (Field, bool) {
	f, ok := m.Lookup(name)
	if !ok {
		return nil, false
	}
	return f, true
}

// Lookup returns the concrete field so tests can drive edits.
func (m *Memory) Lookup(name string) (*MemoryField, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fields[name]
	return f, ok
}

// Names returns the field names in alphabetical order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render implements Renderer.
func (m *Memory) Render(field Field, block ErrorBlock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := make([]string, len(block.Messages))
	copy(messages, block.Messages)
	m.rendered[field.Name()] = ErrorBlock{Messages: messages}
	if f, ok := m.fields[field.Name()]; ok {
		f.errored = true
	}
}

// Clear implements Renderer.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rendered = make(map[string]ErrorBlock)
	for _, f := range m.fields {
		f.errored = false
	}
	m.clears++
}

// Rendered returns the block currently shown for name.
func (m *Memory) Rendered(name string) (ErrorBlock, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	block, ok := m.rendered[name]
	return block, ok
}

// RenderedCount returns how many fields currently show an error block.
func (m *Memory) RenderedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rendered)
}

// Clears returns how many times Clear has been called.
func (m *Memory) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// MemoryField is a field of a Memory form.
type MemoryField struct {
	name      string
	value     string
	errored   bool
	listeners []func(ChangeEvent)
	form      *Memory
}

func (f *MemoryField) Name() string { return f.name }

func (f *MemoryField) Value() string {
	f.form.mu.Lock()
	defer f.form.mu.Unlock()
	return f.value
}

func (f *MemoryField) OnUserInput(fn func(ChangeEvent)) {
	f.form.mu.Lock()
	defer f.form.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// Errored reports whether the field is marked as errored.
func (f *MemoryField) Errored() bool {
	f.form.mu.Lock()
	defer f.form.mu.Unlock()
	return f.errored
}

// Type sets the value as a keystroke-level edit.
func (f *MemoryField) Type(value string) {
	f.edit(value, Keystroke)
}

// Commit sets the value as a committed edit.
func (f *MemoryField) Commit(value string) {
	f.edit(value, Commit)
}

func (f *MemoryField) edit(value string, kind InputKind) {
	f.form.mu.Lock()
	f.value = value
	listeners := make([]func(ChangeEvent), len(f.listeners))
	copy(listeners, f.listeners)
	f.form.mu.Unlock()

	// Listeners may re-enter the form, so they run without the lock held.
	event := ChangeEvent{Field: f.name, Value: value, Kind: kind}
	for _, fn := range listeners {
		fn(event)
	}
}
