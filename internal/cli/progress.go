package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"

	"devenv/internal/installer"
)

// StartSpinner shows a spinner with suffix on w and returns the function
// that stops it. Nothing is shown when quiet is set.
func StartSpinner(w io.Writer, quiet bool, suffix string) func() {
	if quiet {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}

// InstallProgress prints installer events. Status messages drive a spinner;
// command output is only printed in verbose mode, where the spinner is
// disabled so lines are not garbled.
type InstallProgress struct {
	out     io.Writer
	quiet   bool
	verbose bool
	spinner *spinner.Spinner
}

// NewInstallProgress creates an InstallProgress writing to out.
func NewInstallProgress(out io.Writer, quiet, verbose bool) *InstallProgress {
	p := &InstallProgress{out: out, quiet: quiet, verbose: verbose}
	if !quiet && !verbose {
		p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	}
	return p
}

// Run consumes events until the channel is closed.
func (p *InstallProgress) Run(events <-chan installer.Event) {
	for e := range events {
		p.Handle(e)
	}
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// Handle prints a single event.
func (p *InstallProgress) Handle(e installer.Event) {
	switch e.Type {
	case installer.EventStatus:
		if p.spinner != nil {
			p.spinner.Lock()
			p.spinner.Suffix = fmt.Sprintf(" %s: %s", e.ToolID, e.Message)
			p.spinner.Unlock()
			p.spinner.Start()
		} else if p.verbose {
			fmt.Fprintf(p.out, "%s %s\n", text.Bold.Sprintf("[%s]", e.ToolID), e.Message)
		}
	case installer.EventOutput:
		if p.verbose {
			fmt.Fprintf(p.out, "  %s\n", e.Line)
		}
	case installer.EventSuccess:
		p.stopSpinner()
		if !p.quiet {
			fmt.Fprintln(p.out, FormatSuccess(fmt.Sprintf("%s: %s", e.ToolID, e.Message)))
		}
	case installer.EventError:
		p.stopSpinner()
		fmt.Fprintln(p.out, text.FgRed.Sprintf("✗ %s: %s", e.ToolID, e.Message))
	}
}

func (p *InstallProgress) stopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}
