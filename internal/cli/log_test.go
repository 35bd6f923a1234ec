package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/pipeline"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("rendering") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("qr cached") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("qr cached") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("font missing") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDonef(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.donef("Imported %d cards", 3)

	out := buf.String()
	if !strings.Contains(out, "Imported 3 cards") {
		t.Errorf("output %q lacks the message", out)
	}
	if !strings.Contains(out, "took=") {
		t.Errorf("output %q lacks the duration", out)
	}
}

func TestLogRenderStats(t *testing.T) {
	res := &pipeline.Result{
		Filename:   "name-tags-test.pdf",
		RenderID:   "0b9f",
		Typography: typography.Scale(30, 12),
		Stats: pipeline.Stats{
			LoadTime:    time.Millisecond,
			RenderTime:  3 * time.Millisecond,
			Bytes:       2048,
			LongestLine: 30,
		},
	}

	var quiet bytes.Buffer
	logRenderStats(newLogger(&quiet, log.InfoLevel), res)
	if quiet.Len() != 0 {
		t.Errorf("stats logged at info level: %q", quiet.String())
	}

	var buf bytes.Buffer
	logRenderStats(newLogger(&buf, log.DebugLevel), res)
	for _, want := range []string{"render finished", "id=0b9f", "name-tags-test.pdf", "bytes=2048", "render=3ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %q lacks %q", buf.String(), want)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("serving")
	if !strings.Contains(buf.String(), "serving") {
		t.Error("attached logger did not write")
	}
}
