package usecase

import (
	"context"
	"io"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/core"
)

type Bundler interface {
	Build(ctx context.Context, entries []core.EntryPoint) (core.BundleResult, error)
	// Watch blocks until ctx is done, calling onEnd once per completed build.
	Watch(ctx context.Context, entries []core.EntryPoint, onEnd func(core.BundleResult)) error
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)

	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Writer() io.Writer
	ErrWriter() io.Writer
}

type FileSystem = fs.FileSystem
