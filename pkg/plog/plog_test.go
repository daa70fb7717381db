package plog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/seqforge/trimwrap/pkg/plog"
)

func TestSetOutputCapturesLogs(t *testing.T) {
	var buf bytes.Buffer
	plog.SetOutput(&buf)
	plog.SetLevel(slog.LevelInfo)

	plog.Info("trim started", "mode", "both")
	plog.Warn("pigz missing")

	out := buf.String()
	if !strings.Contains(out, "trim started") {
		t.Errorf("output does not contain the info message: %q", out)
	}
	if !strings.Contains(out, "mode=both") {
		t.Errorf("output does not contain the attribute: %q", out)
	}
	if !strings.Contains(out, "pigz missing") {
		t.Errorf("output does not contain the warning: %q", out)
	}
}

func TestSetLevelFiltersLowerLevels(t *testing.T) {
	var buf bytes.Buffer
	plog.SetOutput(&buf)
	plog.SetLevel(slog.LevelWarn)
	defer plog.SetLevel(slog.LevelInfo)

	plog.Debug("invisible")
	plog.Info("invisible too")
	plog.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "invisible") {
		t.Errorf("suppressed levels leaked through: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warning was filtered out: %q", out)
	}
}

func TestNoticeLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	plog.SetOutput(&buf)
	plog.SetLevel(slog.LevelInfo)

	plog.Notice("Executing command", "command", "trimmomatic PE")

	out := buf.String()
	if !strings.Contains(out, "level=NOTICE") {
		t.Errorf("notice records should carry the NOTICE label: %q", out)
	}
}

func TestLevelFromString(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"notice", plog.LevelNotice},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range testCases {
		if got := plog.LevelFromString(tc.in); got != tc.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
