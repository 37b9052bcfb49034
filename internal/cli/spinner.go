package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames, in draw order.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line progress indicator on stderr while a
// build or sync runs. It stops on Stop or when its context ends, so a
// Ctrl-C during a long month build clears the line before the error
// prints.
type Spinner struct {
	out      io.Writer
	message  string
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	stopOnce sync.Once

	mu sync.Mutex
}

// newSpinner creates a spinner that only stops via Stop.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner tied to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:      os.Stderr,
		message:  message,
		ctx:      sctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start begins the animation. It returns immediately.
func (s *Spinner) Start() {
	go s.spin()
}

func (s *Spinner) spin() {
	defer close(s.finished)

	ticker := time.NewTicker(90 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and clears the line. Safe to call more than
// once; later calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.finished
		s.clearLine()
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, either
// because the parent context was cancelled or Stop ran.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
