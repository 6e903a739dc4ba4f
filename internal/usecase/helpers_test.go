package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prism/internal/adapters/cli"
	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/config"
	"github.com/3-lines-studio/prism/internal/core"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

func testConfig(root string) config.Config {
	return config.Config{Root: root, Vendor: []string{}}.WithDefaults()
}

func testOutput() *cli.Output {
	return cli.NewWriterOutput(&bytes.Buffer{})
}

// failingFS fails Rename for the listed base names.
type failingFS struct {
	*fs.OSFileSystem
	failRename map[string]bool
}

func newFailingFS(names ...string) *failingFS {
	fail := make(map[string]bool)
	for _, name := range names {
		fail[name] = true
	}
	return &failingFS{OSFileSystem: fs.NewOSFileSystem(), failRename: fail}
}

func (f *failingFS) Rename(oldPath, newPath string) error {
	if f.failRename[filepath.Base(oldPath)] {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: errors.New("device busy")}
	}
	return f.OSFileSystem.Rename(oldPath, newPath)
}

// fakeBundler emits one file per entry: scripts as entries, stylesheets as
// assets, plus any extra files.
type fakeBundler struct {
	entries []core.EntryPoint
	extra   []core.EmittedFile
	errors  []string
	rebuild int
}

func (b *fakeBundler) result(entries []core.EntryPoint) core.BundleResult {
	b.entries = entries
	if len(b.errors) > 0 {
		return core.BundleResult{Errors: b.errors}
	}

	var files []core.EmittedFile
	for _, entry := range entries {
		ext := filepath.Ext(entry.Source)
		name := core.LogicalName(entry.Source)
		if ext == ".css" {
			files = append(files, core.EmittedFile{
				Path:     entry.OutputPath + ".css",
				Source:   entry.Source,
				Contents: []byte("/* " + entry.Source + " */"),
				Artifact: core.Artifact{Kind: core.ArtifactAsset, Name: name, FileName: name + ".css", Ext: "css"},
			})
			continue
		}
		files = append(files, core.EmittedFile{
			Path:     entry.OutputPath + ".js",
			Source:   entry.Source,
			Contents: []byte("// " + entry.Source),
			Artifact: core.Artifact{Kind: core.ArtifactEntry, Name: name, FacadeModule: entry.Source, Ext: "js"},
		})
	}
	return core.BundleResult{Files: append(files, b.extra...)}
}

func (b *fakeBundler) Build(ctx context.Context, entries []core.EntryPoint) (core.BundleResult, error) {
	return b.result(entries), nil
}

func (b *fakeBundler) Watch(ctx context.Context, entries []core.EntryPoint, onEnd func(core.BundleResult)) error {
	for i := 0; i <= b.rebuild; i++ {
		onEnd(b.result(entries))
	}
	return nil
}
