package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{Compare, Interval, Length, NotEmpty, Regex}, r.Names())

	for _, name := range r.Names() {
		assert.True(t, r.Has(name))
	}
}

func TestRegistry_UnknownRule(t *testing.T) {
	fn, ok := NewRegistry().Lookup("checkPasswordMatch")
	assert.False(t, ok)
	assert.Nil(t, fn)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registered rule is looked up", func(t *testing.T) {
		r := NewRegistry()
		r.RegisterFunc("even", func(_, value string, _ Params) bool {
			return int(ParseLeadingFloat(value))%2 == 0
		})

		fn, ok := r.Lookup("even")
		require.True(t, ok)
		assert.True(t, fn("n", "4", nil))
		assert.False(t, fn("n", "5", nil))
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		defer func() {
			rec := recover()
			assert.NotNil(t, rec, "Expected panic for duplicate registration")
			assert.Contains(t, rec, "already registered")
		}()

		NewRegistry().RegisterFunc(NotEmpty, notEmpty)
	})

	t.Run("missing check panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRegistry().Register(Definition{Name: "broken"})
		})
	})
}

func TestRegistry_Clone(t *testing.T) {
	base := NewRegistry()
	base.RegisterFunc("always", func(string, string, Params) bool { return true })

	clone := base.Clone()
	clone.RegisterFunc("never", func(string, string, Params) bool { return false })

	assert.True(t, clone.Has("always"))
	assert.True(t, clone.Has("never"))
	assert.False(t, base.Has("never"), "clone registrations must not leak into the source")
	assert.False(t, Default().Has("always"))
}

func TestRegistry_Describe(t *testing.T) {
	defs := NewRegistry().Describe()
	require.Len(t, defs, 5)
	assert.Equal(t, Compare, defs[0].Name)
	assert.NotEmpty(t, defs[0].Summary)
}

func TestResult(t *testing.T) {
	assert.True(t, Pass().Passed())
	assert.False(t, Fail().Passed())
	assert.Empty(t, Fail().Message())

	r := FailWith("too short")
	assert.False(t, r.Passed())
	assert.Equal(t, "too short", r.Message())

	assert.True(t, Check(true).Passed())
	assert.False(t, Check(false).Passed())
}

func TestParams(t *testing.T) {
	assert.Equal(t, "", Params(nil).Message())
	assert.Equal(t, "required", Params{"message": "required"}.Message())
	assert.Equal(t, "42", Params{"message": 42}.Message())

	p := Params{"min": 1}
	c := p.Clone()
	c["min"] = 2
	assert.Equal(t, 1, p["min"])
}
