// Package logging configures the optional diagnostics logger.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to verdiff.log in the working directory when
// VERDIFF_DEBUG is set, and a disabled logger otherwise. The TUI owns the
// terminal, so nothing may log to stdout or stderr while it runs.
func New() (zerolog.Logger, func()) {
	if os.Getenv("VERDIFF_DEBUG") == "" {
		return zerolog.Nop(), func() {}
	}

	f, err := os.OpenFile("verdiff.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }
}
