package ui

import (
	"errors"
	"sync"

	"github.com/charmbracelet/huh"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	"github.com/artisanexperiences/fieldcheck/internal/form"
)

// TerminalForm is a form.Form backed by a huh form with one input per
// configured field. Each field is the input's accessor, so every edit reaches
// change listeners as a keystroke event. huh calls the input's validation
// hook when the input is committed; the hook fires a commit event and reports
// the field's rendered error block back to huh as the input error.
type TerminalForm struct {
	mu     sync.Mutex
	title  string
	order  []string
	fields map[string]*terminalField
	blocks map[string]form.ErrorBlock
}

// TerminalOption configures a TerminalForm.
type TerminalOption func(*TerminalForm)

// WithTitle sets the title of the input group.
func WithTitle(title string) TerminalOption {
	return func(t *TerminalForm) { t.title = title }
}

// WithSecret masks the input of the named fields.
func WithSecret(names ...string) TerminalOption {
	return func(t *TerminalForm) {
		for _, name := range names {
			if f, ok := t.fields[name]; ok {
				f.secret = true
			}
		}
	}
}

// WithValues pre-fills field values.
func WithValues(values map[string]string) TerminalOption {
	return func(t *TerminalForm) {
		for name, value := range values {
			if f, ok := t.fields[name]; ok {
				f.value = value
			}
		}
	}
}

// NewTerminalForm creates one input per field of cfg, in configuration order.
func NewTerminalForm(cfg *engine.ValidationConfig, opts ...TerminalOption) *TerminalForm {
	t := &TerminalForm{
		fields: make(map[string]*terminalField),
		blocks: make(map[string]form.ErrorBlock),
	}
	for _, name := range cfg.Names() {
		t.order = append(t.order, name)
		t.fields[name] = &terminalField{name: name, form: t}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Field implements form.Form.
func (t *TerminalForm) Field(name string) (form.Field, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.fields[name]
	if !ok {
		return nil, false
	}
	return f, true
}

// Render implements form.Renderer.
func (t *TerminalForm) Render(field form.Field, block form.ErrorBlock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocks[field.Name()] = block
}

// Clear implements form.Renderer.
func (t *TerminalForm) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocks = make(map[string]form.ErrorBlock)
}

// Values returns the committed value of every field.
func (t *TerminalForm) Values() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	values := make(map[string]string, len(t.fields))
	for name, f := range t.fields {
		values[name] = f.value
	}
	return values
}

// Build assembles the huh form.
func (t *TerminalForm) Build() *huh.Form {
	t.mu.Lock()
	title := t.title
	fields := make([]*terminalField, 0, len(t.order))
	for _, name := range t.order {
		fields = append(fields, t.fields[name])
	}
	t.mu.Unlock()

	// Accessor reads the field value, which takes the form mutex.
	inputs := make([]huh.Field, 0, len(fields))
	for _, f := range fields {
		name := f.name
		input := huh.NewInput().
			Key(name).
			Title(name).
			Accessor(f).
			Validate(f.commit)
		if f.secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}

	group := huh.NewGroup(inputs...)
	if title != "" {
		group = group.Title(title)
	}
	return huh.NewForm(group).WithTheme(huh.ThemeCatppuccin())
}

// Run shows the form until the user submits it or aborts.
func (t *TerminalForm) Run() error {
	return NormalizeAbort(t.Build().Run())
}

func (t *TerminalForm) block(name string) (form.ErrorBlock, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.blocks[name]
	return b, ok
}

type terminalField struct {
	name      string
	value     string
	secret    bool
	listeners []func(form.ChangeEvent)
	form      *TerminalForm
}

func (f *terminalField) Name() string { return f.name }

func (f *terminalField) Value() string {
	f.form.mu.Lock()
	defer f.form.mu.Unlock()
	return f.value
}

func (f *terminalField) OnUserInput(fn func(form.ChangeEvent)) {
	f.form.mu.Lock()
	defer f.form.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// Get implements huh.Accessor.
func (f *terminalField) Get() string {
	return f.Value()
}

// Set implements huh.Accessor. huh calls it after every update of the input,
// so only an actual change of the text is reported.
func (f *terminalField) Set(value string) {
	f.form.mu.Lock()
	if value == f.value {
		f.form.mu.Unlock()
		return
	}
	f.value = value
	listeners := f.snapshotListeners()
	f.form.mu.Unlock()

	notify(listeners, form.ChangeEvent{Field: f.name, Value: value, Kind: form.Keystroke})
}

// commit is the huh validation hook.
func (f *terminalField) commit(value string) error {
	f.form.mu.Lock()
	f.value = value
	listeners := f.snapshotListeners()
	f.form.mu.Unlock()

	notify(listeners, form.ChangeEvent{Field: f.name, Value: value, Kind: form.Commit})

	if block, ok := f.form.block(f.name); ok {
		return errors.New(PlainBlock(block))
	}
	return nil
}

// snapshotListeners must be called with the form mutex held.
func (f *terminalField) snapshotListeners() []func(form.ChangeEvent) {
	listeners := make([]func(form.ChangeEvent), len(f.listeners))
	copy(listeners, f.listeners)
	return listeners
}

func notify(listeners []func(form.ChangeEvent), event form.ChangeEvent) {
	for _, fn := range listeners {
		fn(event)
	}
}
