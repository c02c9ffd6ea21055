package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(pterm.LogLevelWarn, &buf)

	logger.Info("hidden")
	logger.Warn("shown", logger.Args("account", "abc"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "abc") {
		t.Fatalf("warn line missing: %q", out)
	}
}
