package progress

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an activity indicator on stderr while a history scan
// runs. On non-terminals it does nothing, so piping output stays clean.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner returns a spinner with the given message. The spinner is
// inert until Start is called and inert for good when stdout is not a
// terminal.
func NewSpinner(message string) *Spinner {
	caps := DetectTerminalCapabilities()
	if !caps.IsTTY {
		return &Spinner{}
	}
	syms := SelectSymbols(caps)
	sp := spinner.New(spinner.CharSets[syms.SpinnerSet], 120*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	sp.Suffix = " " + message
	return &Spinner{s: sp}
}

func (s *Spinner) Start() {
	if s.s != nil {
		s.s.Start()
	}
}

func (s *Spinner) Stop() {
	if s.s != nil {
		s.s.Stop()
	}
}

// UpdateMessage swaps the text next to the spinner while it runs.
func (s *Spinner) UpdateMessage(message string) {
	if s.s != nil {
		s.s.Suffix = " " + message
	}
}
