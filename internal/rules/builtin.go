package rules

import (
	"math"
	"unicode/utf8"
)

// Built-in rule names.
const (
	NotEmpty = "notEmpty"
	Length   = "length"
	Interval = "interval"
	Regex    = "regex"
	Compare  = "compare"
)

// Operators understood by the compare rule.
const (
	OpEqual        = "="
	OpStrictEqual  = "==="
	OpGreaterEqual = ">="
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpLess         = "<"
	OpNotEqual     = "!="
)

func isBuiltin(name string) bool {
	switch name {
	case NotEmpty, Length, Interval, Regex, Compare:
		return true
	}
	return false
}

// rangeParams is shared by length and interval. A zero max means no upper bound.
type rangeParams struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

func (p rangeParams) contains(n float64) bool {
	if p.Max != 0 {
		return n >= p.Min && n <= p.Max
	}
	return n >= p.Min
}

type regexParams struct {
	Pattern string `mapstructure:"pattern"`
}

type compareParams struct {
	Operator string  `mapstructure:"operator"`
	Etalon   float64 `mapstructure:"etalon"`
}

func (r *Registry) registerBuiltins() {
	r.Register(Definition{
		Name:    NotEmpty,
		Summary: "value is not empty",
		Check:   notEmpty,
	})
	r.Register(Definition{
		Name:    Length,
		Params:  "min (0), max",
		Summary: "character count within [min, max]",
		Check:   r.length,
	})
	r.Register(Definition{
		Name:    Interval,
		Params:  "min (0), max",
		Summary: "numeric value within [min, max], non-numbers count as 0",
		Check:   r.interval,
	})
	r.Register(Definition{
		Name:    Regex,
		Params:  "pattern (\"\")",
		Summary: "value matches pattern",
		Check:   r.regex,
	})
	r.Register(Definition{
		Name:    Compare,
		Params:  "operator (=), etalon (0)",
		Summary: "numeric value compared against etalon",
		Check:   r.compare,
	})
}

func notEmpty(_, value string, _ Params) bool {
	return len(value) > 0
}

func (r *Registry) length(field, value string, params Params) bool {
	var p rangeParams
	if err := params.Decode(&p); err != nil {
		r.log().Warn("invalid length params", "field", field, "err", err)
		return false
	}
	return p.contains(float64(utf8.RuneCountInString(value)))
}

func (r *Registry) interval(field, value string, params Params) bool {
	var p rangeParams
	if err := params.Decode(&p); err != nil {
		r.log().Warn("invalid interval params", "field", field, "err", err)
		return false
	}
	n := ParseLeadingFloat(value)
	if math.IsNaN(n) {
		n = 0
	}
	return p.contains(n)
}

func (r *Registry) regex(field, value string, params Params) bool {
	var p regexParams
	if err := params.Decode(&p); err != nil {
		r.log().Warn("invalid regex params", "field", field, "err", err)
		return false
	}
	re, err := r.pattern(p.Pattern)
	if err != nil {
		r.log().Warn("invalid regex pattern", "field", field, "err", err)
		return false
	}
	return re.MatchString(value)
}

func (r *Registry) compare(field, value string, params Params) bool {
	p := compareParams{Operator: OpEqual}
	if err := params.Decode(&p); err != nil {
		r.log().Warn("invalid compare params", "field", field, "err", err)
		return false
	}
	if p.Operator == "" {
		p.Operator = OpEqual
	}

	n := ParseLeadingFloat(value)
	switch p.Operator {
	case OpEqual, OpStrictEqual:
		return n == p.Etalon
	case OpGreaterEqual:
		return n >= p.Etalon
	case OpLessEqual:
		return n <= p.Etalon
	case OpGreater:
		return n > p.Etalon
	case OpLess:
		return n < p.Etalon
	case OpNotEqual:
		return n != p.Etalon
	default:
		return n == p.Etalon
	}
}
