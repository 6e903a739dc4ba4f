package core

import (
	"path/filepath"
)

type StagedComponent struct {
	ID    string
	Files []string
}

type Move struct {
	Component string
	File      string
	From      string
	To        string
}

type MoveResult struct {
	Move Move
	Err  error
}

// PlanRelocation maps every staged file to the same name under the owning
// component's directory in targetDir. It does not touch the file system.
func PlanRelocation(stagingDir, targetDir string, staged []StagedComponent) []Move {
	var moves []Move
	for _, component := range staged {
		if component.ID == "" {
			continue
		}
		for _, file := range component.Files {
			moves = append(moves, Move{
				Component: component.ID,
				File:      file,
				From:      filepath.Join(stagingDir, component.ID, file),
				To:        filepath.Join(targetDir, component.ID, file),
			})
		}
	}
	return moves
}

func FailedMoves(results []MoveResult) []MoveResult {
	var failed []MoveResult
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
