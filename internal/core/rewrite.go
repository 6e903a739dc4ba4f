package core

import (
	"path"
	"strings"
)

// ImportSpecifier returns the relative import used by a file in fromDir to
// reach target, both relative to the output directory.
func ImportSpecifier(fromDir, target string) string {
	fromDir = strings.Trim(fromDir, "/")
	if fromDir == "" || fromDir == "." {
		return "./" + target
	}

	fromParts := strings.Split(fromDir, "/")
	targetParts := strings.Split(target, "/")
	common := 0
	for common < len(fromParts) && common < len(targetParts)-1 && fromParts[common] == targetParts[common] {
		common++
	}

	up := len(fromParts) - common
	rel := strings.Join(targetParts[common:], "/")
	if up == 0 {
		return "./" + rel
	}
	return strings.Repeat("../", up) + rel
}

// RewriteImports fixes quoted relative imports in a script that moved from
// oldPath to newPath. moved maps the old location of every emitted script to
// its new one, unchanged files included. All paths are relative to the output
// directory.
func RewriteImports(contents []byte, oldPath, newPath string, moved map[string]string) []byte {
	oldDir := path.Dir(oldPath)
	newDir := path.Dir(newPath)

	var pairs []string
	for from, to := range moved {
		oldSpec := ImportSpecifier(oldDir, from)
		newSpec := ImportSpecifier(newDir, to)
		if oldSpec == newSpec {
			continue
		}
		for _, quote := range []string{`"`, `'`} {
			pairs = append(pairs, quote+oldSpec+quote, quote+newSpec+quote)
		}
	}
	if len(pairs) == 0 {
		return contents
	}
	return []byte(strings.NewReplacer(pairs...).Replace(string(contents)))
}
