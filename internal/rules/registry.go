package rules

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Definition describes a named rule for registration and for listing.
type Definition struct {
	Name    string
	Params  string
	Summary string
	Check   Func
}

// Registry maps rule names to rule functions. Lookups of unregistered names
// report !ok and callers skip them, so configurations may mention rules a
// given build does not know about.
type Registry struct {
	mu       sync.RWMutex
	defs     map[string]Definition
	patterns map[string]*regexp.Regexp
	logger   *log.Logger
}

// NewRegistry returns a registry with the built-in rules registered.
func NewRegistry() *Registry {
	r := &Registry{
		defs:     make(map[string]Definition),
		patterns: make(map[string]*regexp.Regexp),
		logger:   log.New(io.Discard),
	}
	r.registerBuiltins()
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry holding only the built-in rules.
// Register on a Clone of it rather than on the shared instance.
func Default() *Registry {
	return defaultRegistry
}

// SetLogger sets the logger used to report rule problems such as invalid
// regex patterns.
func (r *Registry) SetLogger(logger *log.Logger) *Registry {
	if logger != nil {
		r.mu.Lock()
		r.logger = logger
		r.mu.Unlock()
	}
	return r
}

// Register adds a rule definition. It panics if the name is already taken.
func (r *Registry) Register(def Definition) {
	if def.Name == "" {
		panic("rule name must not be empty")
	}
	if def.Check == nil {
		panic(fmt.Sprintf("rule %q has no check function", def.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("rule %q already registered", def.Name))
	}
	r.defs[def.Name] = def
}

// RegisterFunc registers fn under name without descriptive metadata.
func (r *Registry) RegisterFunc(name string, fn Func) {
	r.Register(Definition{Name: name, Check: fn})
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return nil, false
	}
	return def.Check, true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered rule names in alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns every definition sorted by name.
func (r *Registry) Describe() []Definition {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Clone returns an independent registry with the same definitions.
// Built-ins in the clone use the clone's own pattern cache.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	logger := r.logger
	custom := make([]Definition, 0, len(r.defs))
	for name, def := range r.defs {
		if !isBuiltin(name) {
			custom = append(custom, def)
		}
	}
	r.mu.RUnlock()

	clone := NewRegistry().SetLogger(logger)
	for _, def := range custom {
		clone.Register(def)
	}
	return clone
}

// pattern compiles and caches p.
func (r *Registry) pattern(p string) (*regexp.Regexp, error) {
	r.mu.RLock()
	re, ok := r.patterns[p]
	r.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
	}

	r.mu.Lock()
	r.patterns[p] = re
	r.mu.Unlock()
	return re, nil
}

func (r *Registry) log() *log.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}
