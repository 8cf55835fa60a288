package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, name, value string, params Params) bool {
	t.Helper()
	fn, ok := NewRegistry().Lookup(name)
	require.True(t, ok, "rule %q should be registered", name)
	return fn("field", value, params)
}

func TestNotEmpty(t *testing.T) {
	assert.False(t, check(t, NotEmpty, "", nil))
	assert.True(t, check(t, NotEmpty, "a", nil))
	assert.True(t, check(t, NotEmpty, " ", nil), "whitespace counts as a value")
}

func TestLength(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		params Params
		want   bool
	}{
		{"below min", "ab", Params{"min": 3}, false},
		{"at min", "abc", Params{"min": 3}, true},
		{"no params accepts empty", "", nil, true},
		{"within min and max", "abcd", Params{"min": 3, "max": 5}, true},
		{"above max", "abcdef", Params{"min": 3, "max": 5}, false},
		{"max without min", "abcdef", Params{"max": 5}, false},
		{"string params are converted", "abc", Params{"min": "3", "max": "4"}, true},
		{"zero max means unbounded", "abcdefghij", Params{"min": 1, "max": 0}, true},
		{"counts characters not bytes", "héllo", Params{"max": 5}, true},
		{"invalid params fail", "abc", Params{"min": "lots"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(t, Length, tt.value, tt.params))
		})
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		params Params
		want   bool
	}{
		{"inside range", "3", Params{"min": 1, "max": 5}, true},
		{"not a number counts as zero", "abc", Params{"min": 1, "max": 5}, false},
		{"not a number passes default min", "abc", nil, true},
		{"upper bound inclusive", "5", Params{"min": 1, "max": 5}, true},
		{"above range", "5.01", Params{"min": 1, "max": 5}, false},
		{"min only", "100", Params{"min": 10}, true},
		{"leading number is used", "4kg", Params{"min": 1, "max": 5}, true},
		{"negative below default min", "-1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(t, Interval, tt.value, tt.params))
		})
	}
}

func TestRegex(t *testing.T) {
	assert.True(t, check(t, Regex, "123", Params{"pattern": `^\d+$`}))
	assert.False(t, check(t, Regex, "12a", Params{"pattern": `^\d+$`}))

	t.Run("empty pattern matches everything", func(t *testing.T) {
		assert.True(t, check(t, Regex, "", nil))
		assert.True(t, check(t, Regex, "anything", Params{"pattern": ""}))
	})

	t.Run("pattern is not anchored", func(t *testing.T) {
		assert.True(t, check(t, Regex, "order-42", Params{"pattern": `\d+`}))
	})

	t.Run("invalid pattern fails", func(t *testing.T) {
		assert.False(t, check(t, Regex, "abc", Params{"pattern": `(`}))
	})

	t.Run("compiled patterns are cached", func(t *testing.T) {
		r := NewRegistry()
		fn, _ := r.Lookup(Regex)
		fn("f", "1", Params{"pattern": `^\d$`})
		fn("f", "2", Params{"pattern": `^\d$`})
		assert.Len(t, r.patterns, 1)
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		params Params
		want   bool
	}{
		{">= passes at etalon", "10", Params{"operator": ">=", "etalon": 10}, true},
		{">= fails below etalon", "9", Params{"operator": ">=", "etalon": 10}, false},
		{"default operator is equality with zero", "0", nil, true},
		{"default operator rejects non zero", "1", nil, false},
		{"strict equality", "7", Params{"operator": "===", "etalon": 7}, true},
		{"less or equal", "7", Params{"operator": "<=", "etalon": 7}, true},
		{"greater", "7", Params{"operator": ">", "etalon": 7}, false},
		{"less", "6", Params{"operator": "<", "etalon": 7}, true},
		{"not equal", "6", Params{"operator": "!=", "etalon": 7}, true},
		{"string etalon is converted", "12", Params{"operator": "=", "etalon": "12"}, true},
		{"unknown operator falls back to equality", "3", Params{"operator": "~", "etalon": 3}, true},
		{"not a number never equals", "abc", Params{"operator": "=", "etalon": 0}, false},
		{"not a number is not equal", "abc", Params{"operator": "!=", "etalon": 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(t, Compare, tt.value, tt.params))
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	assert.Equal(t, 12.0, ParseLeadingFloat("12px"))
	assert.Equal(t, 350.0, ParseLeadingFloat("  3.5e2x"))
	assert.Equal(t, 0.5, ParseLeadingFloat(".5"))
	assert.Equal(t, -4.0, ParseLeadingFloat("-4"))
	assert.True(t, math.IsInf(ParseLeadingFloat("Infinity"), 1))
	assert.True(t, math.IsNaN(ParseLeadingFloat("abc")))
	assert.True(t, math.IsNaN(ParseLeadingFloat("")))
}
