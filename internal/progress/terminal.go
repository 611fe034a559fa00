// Package progress detects terminal capabilities and drives the spinner
// shown while shiplog walks a repository's history.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// Detect inspects stdout and the environment. Checks: stdout isatty,
// NO_COLOR, SHIPLOG_ASCII, terminal width.
func Detect() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("SHIPLOG_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// spinnerCharSet selects the spinner animation: Unicode braille dots when
// supported, plain ASCII otherwise.
func spinnerCharSet(caps TerminalCapabilities) []string {
	if caps.SupportsUnicode {
		return spinner.CharSets[14] // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	}
	return spinner.CharSets[9] // | / - \
}

// Spinner wraps briandowns/spinner and stays inert on non-TTY output, so
// callers never have to branch on terminal state.
type Spinner struct {
	inner *spinner.Spinner
}

// NewSpinner creates a spinner writing to w with the given message. When
// the terminal cannot host one (piped output, dumb terminal) the returned
// Spinner is a no-op.
func NewSpinner(caps TerminalCapabilities, w io.Writer, message string) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}

	s := spinner.New(spinnerCharSet(caps), 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return &Spinner{inner: s}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if s.inner != nil {
		s.inner.Start()
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	if s.inner != nil {
		s.inner.Stop()
	}
}
