package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// LineSink prints messages as plain lines, for logs and pipes
type LineSink struct {
	out io.Writer
}

// NewLineSink creates a LineSink writing to out
func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

// OnProgress prints the stage once when it starts waiting
func (l *LineSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	if !event.Spinner || event.Stage == "" {
		return
	}
	if event.Message != "" {
		fmt.Fprintf(l.out, "%s: %s\n", event.Stage, event.Message)
		return
	}
	fmt.Fprintln(l.out, event.Stage)
}

// Info prints an info message
func (l *LineSink) Info(message string) {
	fmt.Fprintln(l.out, message)
}

// Error prints an error message
func (l *LineSink) Error(message string) {
	fmt.Fprintln(l.out, "Error: "+message)
}

// Ensure LineSink implements ProgressSink
var _ usecase.ProgressSink = (*LineSink)(nil)
