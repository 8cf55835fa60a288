package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// DisableColor switches styled output, and logger if given, to plain text.
func DisableColor(logger *log.Logger) {
	lipgloss.SetColorProfile(termenv.Ascii)
	if logger != nil {
		logger.SetColorProfile(termenv.Ascii)
	}
}
