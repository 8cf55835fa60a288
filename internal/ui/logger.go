package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the CLI logger writing to w. quiet wins over verbose.
func NewLogger(w io.Writer, verbose, quiet bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "fieldcheck",
		Level:  log.InfoLevel,
	})
	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(false)
		logger.SetReportTimestamp(true)
	}
	return logger
}
