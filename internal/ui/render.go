package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	"github.com/artisanexperiences/fieldcheck/internal/form"
)

// RenderBlock renders an error block: a single message as plain text,
// several messages as an ordered list.
func RenderBlock(block form.ErrorBlock) string {
	switch len(block.Messages) {
	case 0:
		return ""
	case 1:
		return ErrorBlockStyle.Render(block.Messages[0])
	}

	items := make([]any, len(block.Messages))
	for i, m := range block.Messages {
		items[i] = m
	}
	l := list.New(items...).
		Enumerator(list.Arabic).
		EnumeratorStyle(MutedStyle.MarginRight(1)).
		ItemStyle(ErrorBlockStyle)
	return l.String()
}

// PlainBlock renders block without styling, for widgets that apply their own.
func PlainBlock(block form.ErrorBlock) string {
	if !block.IsList() {
		return strings.Join(block.Messages, "")
	}
	lines := make([]string, len(block.Messages))
	for i, m := range block.Messages {
		lines[i] = fmt.Sprintf("%d. %s", i+1, m)
	}
	return strings.Join(lines, "\n")
}

// RenderReport renders every entry of report as a FIELD / ERRORS table.
func RenderReport(report engine.ErrorReport) string {
	rows := make([][]string, 0, report.Len())
	for _, entry := range report.Entries() {
		rows = append(rows, []string{
			ErroredFieldStyle.Render(entry.Name),
			RenderBlock(form.ErrorBlock{Messages: entry.Messages}),
		})
	}
	return RenderTable([]string{"FIELD", "ERRORS"}, rows)
}

// RenderRecordHeader renders the label that precedes a record's report.
func RenderRecordHeader(label string, valid bool) string {
	badge := SuccessBadge.Render("VALID")
	if !valid {
		badge = ErrorBadge.Render("INVALID")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", CodeStyle.Render(label))
}
