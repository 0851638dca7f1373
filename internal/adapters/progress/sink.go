package progress

import (
	"os"

	"github.com/fatih/color"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// NewSink picks the spinner for interactive terminals and plain lines otherwise
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || color.NoColor {
		return NewLineSink(os.Stderr)
	}
	return NewSpinnerSink(os.Stderr)
}
