// Package discovery finds the independently buildable components of a theme.
package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/core"
)

// Script extensions in preference order.
var scriptExtensions = []string{".ts", ".js"}

const styleExtension = ".css"

type Result struct {
	Components []core.ComponentEntry
	// Entries lists every discovered source once, relative to the theme root.
	Entries []string
	Set     *core.ComponentSet
	Skipped []string
}

// Scan looks for components/<id>/src/<id>.{ts,js,css} under root.
func Scan(fsys fs.FileSystem, root, componentsDir string) (Result, error) {
	result := Result{Set: core.NewComponentSet()}

	dir := filepath.Join(root, componentsDir)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no components directory", "dir", dir)
			return result, nil
		}
		return result, fmt.Errorf("reading components directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		component := scanComponent(fsys, root, componentsDir, id)
		sources := component.Sources()
		if len(sources) == 0 {
			slog.Debug("skipping component without sources", "component", id)
			result.Skipped = append(result.Skipped, id)
			continue
		}

		for _, source := range sources {
			if seen[source] {
				continue
			}
			seen[source] = true
			result.Entries = append(result.Entries, source)
		}
		result.Components = append(result.Components, component)
		result.Set.Add(id)
	}

	return result, nil
}

func scanComponent(fsys fs.FileSystem, root, componentsDir, id string) core.ComponentEntry {
	component := core.ComponentEntry{ID: id}
	srcDir := filepath.Join(componentsDir, id, "src")

	for _, ext := range scriptExtensions {
		rel := filepath.ToSlash(filepath.Join(srcDir, id+ext))
		if fsys.FileExists(filepath.Join(root, rel)) {
			component.Script = rel
			break
		}
	}

	rel := filepath.ToSlash(filepath.Join(srcDir, id+styleExtension))
	if fsys.FileExists(filepath.Join(root, rel)) {
		component.Style = rel
	}

	return component
}
