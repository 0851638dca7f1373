package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// SpinnerSink shows a spinner while a registration waits on the chain
type SpinnerSink struct {
	out          io.Writer
	spinner      *spinner.Spinner
	currentStage string
	stageStart   time.Time
}

// NewSpinnerSink creates a spinner-backed progress sink writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{out: out, spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.completeStage()
		r.currentStage = event.Stage
		r.stageStart = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.describe(event)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Fprintln(r.out, message) })
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Fprintln(r.out, message) })
}

func (r *SpinnerSink) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

// completeStage prints a check mark with the duration of the stage that just ended
func (r *SpinnerSink) completeStage() {
	if r.currentStage == "" {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	elapsed := time.Since(r.stageStart).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s (%s)\n", color.GreenString("✓"), r.currentStage, elapsed)
	r.currentStage = ""
}

func (r *SpinnerSink) describe(event usecase.ProgressEvent) string {
	label := color.New(color.FgYellow).Sprint(event.Stage)
	if event.Total > 0 {
		label = fmt.Sprintf("%s [%d/%d]", label, event.Current, event.Total)
	}
	if event.Message != "" {
		label += " " + event.Message
	}
	return label
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
