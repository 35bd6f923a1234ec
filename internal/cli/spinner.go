package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line while a render runs. Frames go to w, never
// stdout, so `render -o -` can stream the artifact.
type spinner struct {
	w     io.Writer
	label string
	start time.Time

	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	stopped chan struct{}

	mu    sync.Mutex
	width int
}

// startSpinner shows label with the elapsed time until Stop, Fail or the
// cancellation of ctx.
func startSpinner(ctx context.Context, w io.Writer, label string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		label:   label,
		start:   time.Now(),
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	t := time.NewTicker(spinnerInterval)
	defer t.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-t.C:
			elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
			s.frame(spinnerFrames[i%len(spinnerFrames)], fmt.Sprintf("%s %s", s.label, elapsed))
		}
	}
}

func (s *spinner) frame(icon, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(icon) + " " + StyleDim.Render(text)
	fmt.Fprintf(s.w, "\r%s", line)
	s.width = max(s.width, len(text)+2)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// Stop ends the animation and clears the status line. It is safe to call
// more than once.
func (s *spinner) Stop() {
	s.once.Do(s.cancel)
	<-s.stopped
	s.clear()
}

// Fail stops the spinner and reports msg as an error.
func (s *spinner) Fail(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
