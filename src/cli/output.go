package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// progress wraps a terminal spinner shown while waiting for the model.
type progress struct {
	s *spinner.Spinner
	w io.Writer
}

func newProgress(w io.Writer, msg string) *progress {
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = "  " + msg
	s.Color("cyan")
	return &progress{s: s, w: w}
}

func (p *progress) Start() { p.s.Start() }

func (p *progress) Stop() { p.s.Stop() }

func (p *progress) Fail(msg string) {
	p.s.Stop()
	red := color.New(color.FgRed)
	red.Fprintf(p.w, "  ✗ %s\n", msg)
}

func (p *progress) Success(msg string) {
	p.s.Stop()
	green := color.New(color.FgGreen)
	green.Fprintf(p.w, "  ✓ %s\n", msg)
}
