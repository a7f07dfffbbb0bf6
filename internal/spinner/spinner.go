// Package spinner animates a status line on stderr while botbench reads
// the result store, which can take a while for the postgres and azblob
// backends.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const interval = 80 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// line renders one frame. The elapsed time is shown once a full second has
// passed.
func line(frame int, message string, elapsed time.Duration) string {
	s := frames[frame%len(frames)] + " " + message
	if secs := int(elapsed / time.Second); secs > 0 {
		s += fmt.Sprintf(" (%ds)", secs)
	}
	return s
}

// Start draws the spinner with message on w until the returned function is
// called. Stopping clears every column the spinner drew and is idempotent.
func Start(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var once sync.Once

	go func() {
		defer close(cleared)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		start := time.Now()
		width := runewidth.StringWidth(message) + 2
		for frame := 0; ; frame++ {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
				return
			case <-ticker.C:
				s := line(frame, message, time.Since(start))
				width = max(width, runewidth.StringWidth(s))
				fmt.Fprint(w, "\r"+s) //nolint:errcheck
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
		<-cleared
	}
}

// StartIfTerminal is Start for terminals only; piped and captured output
// gets no spinner.
func StartIfTerminal(w io.Writer, message string) (stop func()) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return Start(w, message)
	}
	return func() {}
}
