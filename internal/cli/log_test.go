package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("composed 202601") }, true},
		{"debug filtered at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache key") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache key") }, true},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("no base map") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDoneReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(15 * time.Millisecond)
	prog.done("Built 12 pages")

	out := buf.String()
	if !strings.Contains(out, "Built 12 pages") {
		t.Fatalf("output %q missing message", out)
	}
	// Elapsed duration is appended in parentheses.
	if !strings.Contains(out, "(") || !strings.Contains(out, "ms") && !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed duration", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Fatal("loggerFromContext did not return the attached logger")
	}

	loggerFromContext(ctx).Debug("render 202601-map.svg")
	if buf.Len() == 0 {
		t.Error("attached logger did not receive the record")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("expected log.Default() fallback, got nil")
	}
}
