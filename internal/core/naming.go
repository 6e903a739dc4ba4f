package core

import (
	"path"
	"path/filepath"
	"strings"
)

// LogicalName is the manifest name of a source file: its base name without
// extension.
func LogicalName(source string) string {
	base := path.Base(filepath.ToSlash(source))
	name := strings.TrimSuffix(base, path.Ext(base))
	if name == "" || name == "." || name == "/" {
		return "entry"
	}
	return name
}

// VendorChunkName names a chunk built from a single dependency after its
// package, "node_modules/@scope/pkg/index.js" becoming "vendor/@scope_pkg".
func VendorChunkName(moduleID string) (string, bool) {
	moduleID = filepath.ToSlash(moduleID)
	i := strings.LastIndex(moduleID, "node_modules/")
	if i < 0 {
		return "", false
	}
	// nested node_modules resolve to the innermost package
	segments := strings.Split(moduleID[i+len("node_modules/"):], "/")

	pkg := segments[0]
	if strings.HasPrefix(pkg, "@") {
		if len(segments) < 2 || segments[1] == "" {
			return "", false
		}
		pkg += "_" + segments[1]
	}
	pkg = strings.TrimSuffix(pkg, ".js")
	if pkg == "" || pkg == "@" {
		return "", false
	}
	return VendorChunkPrefix + pkg, true
}

// SplitHashedName splits "chunk-ABC123" into ("chunk", "ABC123").
func SplitHashedName(base string) (string, string) {
	i := strings.LastIndex(base, "-")
	if i <= 0 || i == len(base)-1 {
		return base, ""
	}
	return base[:i], base[i+1:]
}
