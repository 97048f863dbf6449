package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/keyplate/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates one status line on stderr until it is stopped or its
// context ends.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	stop   sync.Once

	mu       sync.Mutex
	message  string
	width    int
	stopping bool
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		ctx:     ctx,
		cancel:  cancel,
		exited:  make(chan struct{}),
		message: message,
		width:   len(message),
	}
}

// Start draws a frame every 80ms in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.exited)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.draw(spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+4))
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.width = max(s.width, len(message))
}

// Message returns the text next to the spinner.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.mu.Lock()
		s.stopping = true
		s.mu.Unlock()
		s.cancel()
		<-s.exited
	})
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopping && s.ctx.Err() != nil
}

// spinnerHooks narrates pipeline stages on a spinner.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	s *Spinner
}

func (h spinnerHooks) OnLoadStart(_ context.Context, source string) {
	h.s.SetMessage("Loading " + source)
}

func (h spinnerHooks) OnComposeStart(_ context.Context, keys int) {
	h.s.SetMessage(fmt.Sprintf("Composing plates for %d keys", keys))
}

func (h spinnerHooks) OnRenderStart(_ context.Context, formats []string) {
	h.s.SetMessage("Rendering " + strings.Join(formats, ", "))
}
