package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/form"
)

// Method names an engine operation for Call.
type Method int

const (
	MethodInit Method = iota
	MethodValidate
	MethodClear
	MethodIsValid
	MethodSetOnChange
)

var methodNames = map[Method]string{
	MethodInit:        "init",
	MethodValidate:    "validate",
	MethodClear:       "clear",
	MethodIsValid:     "isValid",
	MethodSetOnChange: "setOnChange",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps an operation name to its Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", fcerrors.ErrUnknownMethod, name)
}

// Dispatch calls the operation named by name. An empty name initializes the
// engine, as does passing Options as the only argument.
// On failure the returned value is false.
func (e *Engine) Dispatch(name string, args ...any) (any, error) {
	if name == "" {
		return e.Call(MethodInit, args...)
	}
	m, err := ParseMethod(name)
	if err != nil {
		e.logger().Error("engine dispatch failed", "err", err)
		return false, err
	}
	return e.Call(m, args...)
}

// Call performs m with args. Operations that return the engine for chaining
// yield *Engine; MethodIsValid yields bool.
//
// MethodInit accepts (Options), (form.Form, Options) or nothing, in which
// case the current form is kept and all options reset to defaults.
// MethodSetOnChange accepts a func(form.ChangeEvent).
func (e *Engine) Call(m Method, args ...any) (any, error) {
	switch m {
	case MethodInit:
		f, opts, err := e.initArgs(args)
		if err != nil {
			return false, err
		}
		return e.Initialize(f, opts), nil
	case MethodValidate:
		return e.Validate(), nil
	case MethodClear:
		return e.Clear(), nil
	case MethodIsValid:
		return e.IsValid(), nil
	case MethodSetOnChange:
		if len(args) != 1 {
			return false, fmt.Errorf("%w: setOnChange takes one callback, got %d arguments", fcerrors.ErrInvalidArgument, len(args))
		}
		fn, ok := args[0].(func(form.ChangeEvent))
		if !ok {
			return false, fmt.Errorf("%w: setOnChange callback has type %T", fcerrors.ErrInvalidArgument, args[0])
		}
		return e.SetOnChange(fn), nil
	default:
		err := fmt.Errorf("%w: %s", fcerrors.ErrUnknownMethod, m)
		e.logger().Error("engine dispatch failed", "err", err)
		return false, err
	}
}

func (e *Engine) initArgs(args []any) (form.Form, Options, error) {
	current, _ := e.snapshot()
	switch len(args) {
	case 0:
		return current, Options{}, nil
	case 1:
		opts, ok := args[0].(Options)
		if !ok {
			return nil, Options{}, fmt.Errorf("%w: init options have type %T", fcerrors.ErrInvalidArgument, args[0])
		}
		return current, opts, nil
	case 2:
		f, ok := args[0].(form.Form)
		if !ok && args[0] != nil {
			return nil, Options{}, fmt.Errorf("%w: init form has type %T", fcerrors.ErrInvalidArgument, args[0])
		}
		opts, ok := args[1].(Options)
		if !ok {
			return nil, Options{}, fmt.Errorf("%w: init options have type %T", fcerrors.ErrInvalidArgument, args[1])
		}
		return f, opts, nil
	default:
		return nil, Options{}, fmt.Errorf("%w: init takes at most two arguments, got %d", fcerrors.ErrInvalidArgument, len(args))
	}
}

func (e *Engine) logger() *log.Logger {
	_, opts := e.snapshot()
	return opts.Logger
}
