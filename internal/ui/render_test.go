package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	"github.com/artisanexperiences/fieldcheck/internal/form"
	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

func TestRenderBlock(t *testing.T) {
	t.Run("single message is plain", func(t *testing.T) {
		out := RenderBlock(form.ErrorBlock{Messages: []string{"required"}})
		assert.Contains(t, out, "required")
		assert.NotContains(t, out, "1.")
	})

	t.Run("several messages are an ordered list", func(t *testing.T) {
		out := RenderBlock(form.ErrorBlock{Messages: []string{"required", "too short"}})
		assert.Contains(t, out, "1.")
		assert.Contains(t, out, "2.")
		assert.Less(t, strings.Index(out, "required"), strings.Index(out, "too short"))
	})

	t.Run("empty block renders nothing", func(t *testing.T) {
		assert.Empty(t, RenderBlock(form.ErrorBlock{}))
	})
}

func TestPlainBlock(t *testing.T) {
	assert.Equal(t, "required", PlainBlock(form.ErrorBlock{Messages: []string{"required"}}))
	assert.Equal(t, "1. required\n2. too short", PlainBlock(form.ErrorBlock{Messages: []string{"required", "too short"}}))
}

func TestRenderReport(t *testing.T) {
	f := form.NewMemory(map[string]string{"login": "", "age": "3"})
	e := engine.Attach(f, engine.Options{Config: engine.NewConfig().
		Add("login", engine.Use(rules.NotEmpty, rules.Params{"message": "login required"})).
		Add("age", engine.Use(rules.Interval, rules.Params{"min": 18, "message": "too young"})),
	})
	e.Validate()

	out := RenderReport(e.Report())
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "login required")
	assert.Contains(t, out, "too young")
	assert.Less(t, strings.Index(out, "login"), strings.Index(out, "age"))
}

func TestRenderRulesTable(t *testing.T) {
	out := RenderRulesTable(rules.NewRegistry().Describe())
	for _, name := range rules.NewRegistry().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "PASSES WHEN")
}

func TestRenderRecordHeader(t *testing.T) {
	assert.Contains(t, RenderRecordHeader("row 1", true), "VALID")
	assert.Contains(t, RenderRecordHeader("row 2", false), "INVALID")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewLogger(&buf, true, true)
	quiet.Warn("hidden")
	assert.Empty(t, buf.String())

	verbose := NewLogger(&buf, true, false)
	verbose.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, log.DebugLevel, verbose.GetLevel())

	normal := NewLogger(&buf, false, false)
	require.Equal(t, log.InfoLevel, normal.GetLevel())
}

func TestSplitFieldNames(t *testing.T) {
	assert.Equal(t, []string{"login", "password"}, SplitFieldNames(" login, ,password ,"))
	assert.Nil(t, SplitFieldNames(" , "))
}

func TestValidateFieldNames(t *testing.T) {
	assert.NoError(t, validateFieldNames("login, user.email"))
	assert.Error(t, validateFieldNames(""))
	assert.Error(t, validateFieldNames("login, 9lives"))
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	defer func() { Out = prev }()

	PrintSuccess("saved")
	PrintError("broken")

	assert.Contains(t, buf.String(), "saved")
	assert.Contains(t, buf.String(), "broken")
}
