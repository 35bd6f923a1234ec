// Package cli implements the nametag command-line interface.
//
// The CLI renders name tag sheets for a card, serves the HTTP API, browses
// the configured card store and manages the asset cache. It is built using
// cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Render a sheet or a single tag to PDF, PNG or HTML
//   - serve: Run the HTTP server
//   - cards: List, show, import and interactively pick cards
//   - fonts: Show which TrueType files back each font family
//   - cache: Manage the QR and media cache
//
// # Configuration
//
// Backends are read from a TOML file (see package config), selected with
// --config. Without a file the sample card is served from memory.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Example
//
//	import "github.com/mwarrick/digital-business-card-sub004/internal/cli"
//
//	func main() {
//	    root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
//	    if err := root.ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/pipeline"
)

// newLogger returns the CLI logger. Timestamps carry centiseconds so the
// load, layout and render steps of one command can be told apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a multi-card operation took, e.g.
// "Imported 12 cards (41ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) donef(format string, args ...any) {
	p.logger.Info(fmt.Sprintf(format, args...), "took", time.Since(p.start).Round(time.Millisecond))
}

// logRenderStats writes the per-stage timings of a render at debug level.
func logRenderStats(l *log.Logger, res *pipeline.Result) {
	st := res.Stats
	l.Debug("render finished",
		"id", res.RenderID,
		"file", res.Filename,
		"longest", st.LongestLine,
		"font_pt", res.Typography.FontSize,
		"bytes", st.Bytes,
		"load", st.LoadTime.Round(time.Microsecond),
		"layout", st.LayoutTime.Round(time.Microsecond),
		"render", st.RenderTime.Round(time.Microsecond),
	)
}

type ctxKey struct{}

// withLogger attaches l to ctx for the subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() when a
// command runs without the root's PersistentPreRunE (as in tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
