package usecase

import (
	"log/slog"
	"path/filepath"

	"github.com/3-lines-studio/prism/internal/core"
)

type RelocationOutput struct {
	// Skipped is set for watch builds, which never touch the staging directory.
	Skipped bool
	// Staged is false when no component was compiled into the staging directory.
	Staged  bool
	Results []core.MoveResult
	Cleanup error
}

func (o RelocationOutput) Moved() int {
	return len(o.Results) - len(core.FailedMoves(o.Results))
}

// ComputeRelocationPlan lists the staging directory, one subdirectory per
// compiled component. A missing staging directory yields no plan.
func ComputeRelocationPlan(fsys FileSystem, stagingDir, targetDir string) ([]core.Move, bool, error) {
	if !fsys.IsDir(stagingDir) {
		return nil, false, nil
	}

	entries, err := fsys.ReadDir(stagingDir)
	if err != nil {
		return nil, true, err
	}

	var staged []core.StagedComponent
	for _, entry := range entries {
		if !entry.IsDir() {
			slog.Debug("ignoring stray file in staging directory", "file", entry.Name())
			continue
		}

		files, err := fsys.ReadDir(filepath.Join(stagingDir, entry.Name()))
		if err != nil {
			slog.Error("failed to list staged component", "component", entry.Name(), "error", err)
			continue
		}

		component := core.StagedComponent{ID: entry.Name()}
		for _, file := range files {
			component.Files = append(component.Files, file.Name())
		}
		staged = append(staged, component)
	}

	return core.PlanRelocation(stagingDir, targetDir, staged), true, nil
}

// ApplyMoves runs every move, overwriting existing targets. A failed move is
// logged and does not stop the remaining ones.
func ApplyMoves(fsys FileSystem, moves []core.Move) []core.MoveResult {
	results := make([]core.MoveResult, 0, len(moves))
	for _, move := range moves {
		err := fsys.MkdirAll(filepath.Dir(move.To), 0755)
		if err == nil {
			err = fsys.Rename(move.From, move.To)
		}

		if err != nil {
			slog.Error("failed to move component file", "file", move.File, "component", move.Component, "error", err)
		} else {
			slog.Debug("moved component file", "file", move.File, "to", filepath.Dir(move.To))
		}
		results = append(results, core.MoveResult{Move: move, Err: err})
	}
	return results
}

// RelocateComponents moves staged component files into targetDir and removes
// the staging directory. Only full builds relocate.
func RelocateComponents(fsys FileSystem, stagingDir, targetDir string, mode core.BuildMode) RelocationOutput {
	if !core.ShouldRelocate(mode) {
		slog.Debug("skipping relocation", "mode", mode.String())
		return RelocationOutput{Skipped: true}
	}

	moves, staged, err := ComputeRelocationPlan(fsys, stagingDir, targetDir)
	if !staged {
		return RelocationOutput{}
	}

	output := RelocationOutput{Staged: true}
	if err != nil {
		slog.Error("failed to list staging directory", "dir", stagingDir, "error", err)
	} else {
		output.Results = ApplyMoves(fsys, moves)
	}

	if err := fsys.RemoveAll(stagingDir); err != nil {
		slog.Error("failed to remove staging directory", "dir", stagingDir, "error", err)
		output.Cleanup = err
	} else {
		slog.Debug("removed staging directory", "dir", stagingDir)
	}

	return output
}
