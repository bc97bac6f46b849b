package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/importer"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantOut bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("wrote output = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestProgressDoneReportsDuration(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Converted network.xlsx")

	got := buf.String()
	if !strings.Contains(got, "Converted network.xlsx") {
		t.Errorf("output missing message: %q", got)
	}
	if !regexp.MustCompile(`\(\d+(\.\d+)?(ns|µs|ms|s)\)`).MatchString(got) {
		t.Errorf("output missing duration: %q", got)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New(errors.ErrCodeMissingSheet, "required sheet %q not found", "Lines"))

	got := buf.String()
	if !strings.Contains(got, `required sheet "Lines" not found`) || !strings.Contains(got, "MISSING_SHEET") {
		t.Errorf("PrintError() = %q", got)
	}
}

func TestPrintReportTruncates(t *testing.T) {
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })

	var r importer.Report
	for i := range maxNotes + 3 {
		r.Notes = append(r.Notes, importer.Note{Kind: importer.NoteUnknownStation, Sheet: "LineStops", Row: i + 2, Detail: "unknown"})
	}

	printReport(r, false)
	if !strings.Contains(buf.String(), "and 3 more") {
		t.Errorf("truncated report = %q", buf.String())
	}

	buf.Reset()
	printReport(r, true)
	if strings.Contains(buf.String(), "more") {
		t.Errorf("full report should not truncate: %q", buf.String())
	}
	if got := strings.Count(buf.String(), "LineStops row"); got != maxNotes+3 {
		t.Errorf("full report lists %d notes, want %d", got, maxNotes+3)
	}
}
