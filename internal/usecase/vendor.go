package usecase

import (
	"log/slog"
	"path/filepath"
)

type VendorResult struct {
	Package string
	Missing bool
	Err     error
}

// MirrorVendor copies allow-listed packages verbatim from nodeModules into
// vendorDir. These are loaded at runtime, outside the module graph.
func MirrorVendor(fsys FileSystem, nodeModules, vendorDir string, packages []string) []VendorResult {
	if len(packages) == 0 {
		return nil
	}

	results := make([]VendorResult, 0, len(packages))
	if err := fsys.MkdirAll(vendorDir, 0755); err != nil {
		slog.Error("failed to create vendor directory", "dir", vendorDir, "error", err)
		for _, pkg := range packages {
			results = append(results, VendorResult{Package: pkg, Err: err})
		}
		return results
	}

	for _, pkg := range packages {
		src := filepath.Join(nodeModules, pkg)
		if !fsys.IsDir(src) {
			slog.Warn("vendor package not found", "package", pkg, "dir", nodeModules)
			results = append(results, VendorResult{Package: pkg, Missing: true})
			continue
		}

		if err := fsys.CopyDir(src, filepath.Join(vendorDir, pkg)); err != nil {
			slog.Error("failed to copy vendor package", "package", pkg, "error", err)
			results = append(results, VendorResult{Package: pkg, Err: err})
			continue
		}

		slog.Info("copied vendor package", "package", pkg)
		results = append(results, VendorResult{Package: pkg})
	}
	return results
}
