package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...)

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}

// RenderRulesTable lists rule definitions with their parameters.
func RenderRulesTable(defs []rules.Definition) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers("RULE", "PARAMS", "PASSES WHEN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(Primary)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(ColorSuccess)
			}
			return lipgloss.Style{}
		})

	for _, def := range defs {
		params := def.Params
		if params == "" {
			params = "-"
		}
		t.Row(def.Name, params, def.Summary)
	}

	return t.String()
}
