package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StepSpinner shows an animated spinner for a running pipeline step.
// In non-TTY environments (CI, piped output) it degrades to plain
// start/finish lines so logs stay readable.
type StepSpinner struct {
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	spin    *spinner.Spinner
	message string
}

// NewStepSpinner creates a spinner writing to out, detecting terminal
// capabilities automatically.
func NewStepSpinner(out io.Writer) *StepSpinner {
	caps := DetectTerminalCapabilities()
	return &StepSpinner{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// Start begins animating with the given message.
func (s *StepSpinner) Start(message string) {
	s.message = message

	if !s.caps.IsTTY {
		fmt.Fprintf(s.out, "%s...\n", message)
		return
	}

	s.spin = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(s.out))
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Succeed stops the spinner and prints a success line.
func (s *StepSpinner) Succeed(message string) {
	s.stop()
	fmt.Fprintf(s.out, "%s %s\n", s.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (s *StepSpinner) Fail(message string) {
	s.stop()
	fmt.Fprintf(s.out, "%s %s\n", s.symbols.Failure, message)
}

func (s *StepSpinner) stop() {
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}
}
