// Package form defines the capabilities the validation engine needs from the
// form it is attached to: looking fields up by name, reading their values,
// subscribing to user edits, and rendering error blocks next to fields.
package form

// InputKind distinguishes continuous edits from committed ones.
type InputKind int

const (
	// Keystroke is fired for every edit while the user is typing.
	Keystroke InputKind = iota
	// Commit is fired when an edit is committed (blur, enter, explicit set).
	Commit
)

func (k InputKind) String() string {
	switch k {
	case Keystroke:
		return "keystroke"
	case Commit:
		return "commit"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one user edit of a field.
type ChangeEvent struct {
	Field string
	Value string
	Kind  InputKind
}

// Field is a handle to one named input.
type Field interface {
	Name() string
	Value() string
	// OnUserInput subscribes fn to keystroke and commit edits of the field.
	OnUserInput(fn func(ChangeEvent))
}

// ErrorBlock is the set of messages rendered for one field.
type ErrorBlock struct {
	Messages []string
}

// IsList reports whether the block renders as an ordered list rather than a
// single plain message.
func (b ErrorBlock) IsList() bool {
	return len(b.Messages) > 1
}

// Renderer shows and removes error blocks.
type Renderer interface {
	// Render places block next to field and marks the field as errored.
	Render(field Field, block ErrorBlock)
	// Clear removes every rendered block and errored marker of the form.
	Clear()
}

// Form is the object an engine is attached to.
type Form interface {
	Renderer
	// Field looks up a field by name. ok is false when no field has that name.
	Field(name string) (field Field, ok bool)
}

// Accessor resolves a field name to a handle.
type Accessor func(name string) (Field, bool)
