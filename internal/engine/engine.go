// Package engine runs declarative field validation against a form.
//
// An Engine is attached to one form with a ValidationConfig. Each Validate
// call reads every configured field through the field accessor, evaluates
// its rules in configuration order, and renders one error block per failing
// field. The last validity flag and ErrorReport are kept until the next pass.
//
// Fields that cannot be resolved during Validate are treated as having an
// empty value. Their failures appear in the report with a nil Field and are
// not rendered.
package engine

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/fieldcheck/internal/form"
	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

// DefaultErrorMessage is used when a failing rule supplies no message.
const DefaultErrorMessage = "Validation result negative"

// Options configures an Engine. Unset fields take their defaults.
type Options struct {
	// Config is the validation configuration. It is copied on Initialize.
	Config *ValidationConfig

	// DefaultErrorMessage replaces DefaultErrorMessage.
	DefaultErrorMessage string

	// GetField overrides the form's own field lookup.
	GetField form.Accessor

	// OnChange, when set, is subscribed to every configured field at
	// initialization.
	OnChange func(form.ChangeEvent)

	// Registry resolves rule names. Defaults to the built-in registry.
	Registry *rules.Registry

	// Logger receives skip and missing-field diagnostics. Defaults to a
	// discard logger.
	Logger *log.Logger
}

// Engine holds the validation state of one attached form.
type Engine struct {
	mu     sync.Mutex
	form   form.Form
	opts   Options
	valid  bool
	report ErrorReport
}

// Attach creates an engine for f. f may be nil when opts.GetField is set;
// nothing is rendered in that case.
func Attach(f form.Form, opts Options) *Engine {
	return new(Engine).Initialize(f, opts)
}

// Initialize (re)configures the engine for f. Any previous configuration,
// validity flag and report are discarded. Change subscriptions made earlier
// stay in place since forms offer no way to remove them.
func (e *Engine) Initialize(f form.Form, opts Options) *Engine {
	merged := withDefaults(f, opts)

	e.mu.Lock()
	e.form = f
	e.opts = merged
	e.valid = false
	e.report = ErrorReport{}
	e.mu.Unlock()

	if merged.OnChange != nil {
		e.SetOnChange(merged.OnChange)
	}
	return e
}

func withDefaults(f form.Form, opts Options) Options {
	merged := opts
	merged.Config = opts.Config.Clone()
	if merged.DefaultErrorMessage == "" {
		merged.DefaultErrorMessage = DefaultErrorMessage
	}
	if merged.Registry == nil {
		merged.Registry = rules.Default()
	}
	if merged.Logger == nil {
		merged.Logger = log.New(io.Discard)
	}
	if merged.GetField == nil {
		merged.GetField = func(name string) (form.Field, bool) {
			if f == nil {
				return nil, false
			}
			return f.Field(name)
		}
	}
	return merged
}

// snapshot returns the form and options, filling defaults for an engine
// that was never initialized.
func (e *Engine) snapshot() (form.Form, Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opts.Registry == nil {
		e.opts = withDefaults(e.form, e.opts)
	}
	return e.form, e.opts
}

// Validate runs every configured rule against the current field values,
// replaces the report, and renders the failures.
func (e *Engine) Validate() *Engine {
	f, opts := e.snapshot()

	e.mu.Lock()
	e.valid = false
	e.mu.Unlock()
	if f != nil {
		f.Clear()
	}

	var report ErrorReport
	for _, field := range opts.Config.Fields() {
		handle, ok := opts.GetField(field.Name)
		value := ""
		if ok && handle != nil {
			value = handle.Value()
		} else {
			handle = nil
			opts.Logger.Warn("field not found, validating as empty", "field", field.Name)
		}

		for _, rule := range field.Rules {
			if message, failed := evaluate(opts, field.Name, value, rule); failed {
				report.add(field.Name, handle, message)
			}
		}
	}

	valid := report.IsEmpty()
	e.mu.Lock()
	e.report = report
	e.valid = valid
	e.mu.Unlock()

	if valid {
		opts.Logger.Debug("validation passed", "fields", opts.Config.Len())
		return e
	}

	opts.Logger.Debug("validation failed", "fields", report.Fields())
	if f == nil {
		return e
	}
	for _, entry := range report.entries {
		if entry.Field == nil {
			continue
		}
		f.Render(entry.Field, form.ErrorBlock{Messages: entry.Messages})
	}
	return e
}

// evaluate runs one rule and returns the failure message when it fails.
func evaluate(opts Options, field, value string, rule Rule) (string, bool) {
	if rule.IsCustom() {
		result := rule.Custom(field, value, rule.Custom)
		if result.Passed() {
			return "", false
		}
		if message := result.Message(); message != "" {
			return message, true
		}
		return opts.DefaultErrorMessage, true
	}

	check, ok := opts.Registry.Lookup(rule.Name)
	if !ok {
		opts.Logger.Debug("skipping unknown rule", "field", field, "rule", rule.Name)
		return "", false
	}
	if check(field, value, rule.Params) {
		return "", false
	}
	if message := rule.Params.Message(); message != "" {
		return message, true
	}
	return opts.DefaultErrorMessage, true
}

// Clear removes rendered errors from the form. The validity flag and report
// are left as they are.
func (e *Engine) Clear() *Engine {
	f, _ := e.snapshot()
	if f != nil {
		f.Clear()
	}
	return e
}

// IsValid returns the outcome of the last Validate, false before the first.
func (e *Engine) IsValid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.valid
}

// Report returns a copy of the last ErrorReport.
func (e *Engine) Report() ErrorReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.report.Clone()
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() *ValidationConfig {
	_, opts := e.snapshot()
	return opts.Config.Clone()
}

// SetOnChange subscribes fn to user edits of every configured field that
// resolves. Unresolved fields are skipped.
func (e *Engine) SetOnChange(fn func(form.ChangeEvent)) *Engine {
	if fn == nil {
		return e
	}
	_, opts := e.snapshot()
	for _, name := range opts.Config.Names() {
		handle, ok := opts.GetField(name)
		if !ok || handle == nil {
			opts.Logger.Debug("not watching unresolved field", "field", name)
			continue
		}
		handle.OnUserInput(fn)
	}
	return e
}
