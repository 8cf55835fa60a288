// Package rules defines the rule contract used by the validation engine and
// the registry of named rules it resolves configuration entries against.
//
// A named rule is a predicate over the raw string value of one field, driven
// by loosely typed Params. Built-in rules only ever report pass or fail; the
// failure message comes from the "message" parameter or the engine default.
// Inline CustomFunc rules may additionally supply their own message.
package rules

// MessageKey is the parameter every rule accepts to override its failure message.
const MessageKey = "message"

// Func is a named rule: it reports whether value passes for the given field.
type Func func(field, value string, params Params) bool

// CustomFunc is an inline rule supplied directly in a field's configuration
// instead of a Params value.
//
// Self-argument quirk: the third argument is always the CustomFunc itself,
// not a parameter set. Existing rules receive their own reference there and
// the engine keeps passing it.
type CustomFunc func(field, value string, self CustomFunc) Result

// Result is the outcome of a CustomFunc.
type Result struct {
	failed  bool
	message string
}

// Pass reports a passing value.
func Pass() Result { return Result{} }

// Fail reports a failure that should use the engine's default message.
func Fail() Result { return Result{failed: true} }

// FailWith reports a failure with an explicit message. An empty message
// behaves like Fail.
func FailWith(message string) Result { return Result{failed: true, message: message} }

// Check converts a boolean outcome into a Result.
func Check(ok bool) Result {
	if ok {
		return Pass()
	}
	return Fail()
}

// Passed reports whether the rule passed.
func (r Result) Passed() bool { return !r.failed }

// Message returns the explicit failure message, if any.
func (r Result) Message() string { return r.message }
