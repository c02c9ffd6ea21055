package ui

import (
	"io"

	"github.com/pterm/pterm"
)

// NewLogger builds the structured logger the service layer writes to.
func NewLogger(level pterm.LogLevel, w io.Writer) *pterm.Logger {
	logger := pterm.DefaultLogger.
		WithLevel(level).
		WithTime(false)

	if w != nil {
		logger = logger.WithWriter(w)
	}
	return logger
}
