package core

// EntryPoint is a source compiled as an independent root. OutputPath is the
// extension-less destination relative to the output directory.
type EntryPoint struct {
	Source     string
	OutputPath string
}

type EmittedFile struct {
	Artifact Artifact
	// Path is where the bundler emitted the file, relative to the output
	// directory.
	Path string
	// Source is the entry source relative to the theme root, empty for
	// chunks and assets.
	Source   string
	Contents []byte
	// CSSBundle is the emitted stylesheet of a script entry, relative to
	// the output directory.
	CSSBundle string
}

type BundleResult struct {
	Files    []EmittedFile
	Warnings []string
	Errors   []string
}

func (r BundleResult) Failed() bool {
	return len(r.Errors) > 0
}
