package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

const sampleFields = `
login:
  notEmpty: { message: Username is required and cannot be empty }
  length: { min: 3, message: Value should be at least 3 symbols }
password:
  notEmpty:
age:
  interval: { min: "18", max: 99 }
  notEmpty: {}
`

func TestValidationConfig_UnmarshalYAML(t *testing.T) {
	var cfg ValidationConfig
	require.NoError(t, yaml.Unmarshal([]byte(sampleFields), &cfg))

	assert.Equal(t, []string{"login", "password", "age"}, cfg.Names())

	login, ok := cfg.Rules("login")
	require.True(t, ok)
	require.Len(t, login, 2)
	assert.Equal(t, rules.NotEmpty, login[0].Name)
	assert.Equal(t, "Username is required and cannot be empty", login[0].Params.Message())
	assert.Equal(t, rules.Length, login[1].Name)
	assert.Equal(t, 3, login[1].Params["min"])

	password, _ := cfg.Rules("password")
	require.Len(t, password, 1)
	assert.Nil(t, password[0].Params)

	age, _ := cfg.Rules("age")
	assert.Equal(t, []string{rules.Interval, rules.NotEmpty}, []string{age[0].Name, age[1].Name})
}

func TestValidationConfig_UnmarshalErrors(t *testing.T) {
	var cfg ValidationConfig

	err := yaml.Unmarshal([]byte("- login\n"), &cfg)
	assert.Error(t, err)

	err = yaml.Unmarshal([]byte("login: notEmpty\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")

	err = yaml.Unmarshal([]byte("login:\n  length: 3\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestValidationConfig_MarshalRoundTrip(t *testing.T) {
	cfg := NewConfig().
		Add("zeta", Use(rules.NotEmpty, nil)).
		Add("alpha",
			Use(rules.Regex, rules.Params{"pattern": `^\d+$`}),
			Custom("inline", func(string, string, rules.CustomFunc) rules.Result { return rules.Pass() }),
		)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var back ValidationConfig
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, []string{"zeta", "alpha"}, back.Names())

	alpha, _ := back.Rules("alpha")
	require.Len(t, alpha, 1, "inline rules are not serialized")
	assert.Equal(t, `^\d+$`, alpha[0].Params["pattern"])
}

func TestValidationConfig_Add(t *testing.T) {
	cfg := NewConfig().
		Add("a", Use(rules.NotEmpty, nil)).
		Add("b", Use(rules.NotEmpty, nil)).
		Add("a", Use(rules.Length, rules.Params{"min": 2}), Use(rules.Length, rules.Params{"min": 4}))

	assert.Equal(t, []string{"a", "b"}, cfg.Names(), "re-adding keeps position")
	a, _ := cfg.Rules("a")
	require.Len(t, a, 1, "rule names are unique within a field")
	assert.Equal(t, 4, a[0].Params["min"])

	assert.True(t, cfg.Has("b"))
	assert.False(t, cfg.Has("c"))
	assert.Equal(t, 2, cfg.Len())

	var nilCfg *ValidationConfig
	assert.Equal(t, 0, nilCfg.Len())
	assert.Empty(t, nilCfg.Names())
}

func TestErrorReport(t *testing.T) {
	var r ErrorReport
	assert.True(t, r.IsEmpty())

	r.add("login", nil, "required")
	r.add("email", nil, "invalid")
	r.add("login", nil, "too short")

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"login", "email"}, r.Fields())
	assert.Equal(t, []string{"required", "too short"}, r.Messages("login"))
	assert.Nil(t, r.Messages("missing"))

	clone := r.Clone()
	clone.add("login", nil, "extra")
	assert.Len(t, r.Messages("login"), 2)

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "login:\n    - required\n    - too short\nemail:\n    - invalid\n", string(out))
}
