package rules

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds the loosely typed parameters of one rule applied to one field.
// Values may be numbers, strings or booleans as they appear in configuration.
type Params map[string]any

// Decode copies params into out, converting between strings and numbers
// where needed. Keys missing from params leave the corresponding fields of
// out untouched, so callers pre-populate out with defaults.
func (p Params) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("creating params decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("decoding rule params: %w", err)
	}
	return nil
}

// Message returns the message override, or an empty string.
func (p Params) Message() string {
	if p == nil {
		return ""
	}
	switch v := p[MessageKey].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
