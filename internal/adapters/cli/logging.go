package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogging installs a charmbracelet logger as the slog default handler.
func SetupLogging(verbose bool) *log.Logger {
	return SetupLoggingTo(os.Stderr, verbose)
}

func SetupLoggingTo(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "prism",
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
		TimeFormat:      "15:04:05",
	})
	slog.SetDefault(slog.New(logger))
	return logger
}
