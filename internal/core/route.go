package core

import (
	"path"
	"path/filepath"
	"strings"
)

type ArtifactKind int

const (
	ArtifactEntry ArtifactKind = iota
	ArtifactChunk
	ArtifactAsset
)

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactEntry:
		return "entry"
	case ArtifactChunk:
		return "chunk"
	default:
		return "asset"
	}
}

// Artifact describes one file emitted by the bundler before it is placed.
type Artifact struct {
	Kind ArtifactKind
	// Name is the logical name, e.g. "main", "chunk" or "vendor/lodash".
	Name string
	// FileName is the emitted base file name, used for assets.
	FileName string
	// FacadeModule is the source module of an entry chunk.
	FacadeModule string
	// Ext is the file extension without the leading dot.
	Ext  string
	Hash string
}

func (a Artifact) IsScript() bool {
	return a.Ext == "js" && a.Kind != ArtifactAsset
}

const (
	ChunksDir         = "chunks"
	VendorChunkPrefix = "vendor/"
)

type Router struct {
	componentsDir string
	marker        string
	components    *ComponentSet
	match         MatchMode
}

func NewRouter(componentsDir string, components *ComponentSet, match MatchMode) *Router {
	componentsDir = strings.Trim(filepath.ToSlash(componentsDir), "/")
	if componentsDir == "" {
		componentsDir = "components"
	}
	if components == nil {
		components = NewComponentSet()
	}
	if match == "" {
		match = MatchExact
	}
	return &Router{
		componentsDir: componentsDir,
		marker:        "/" + componentsDir + "/",
		components:    components,
		match:         match,
	}
}

func (r *Router) Components() *ComponentSet {
	return r.components
}

// Route returns the destination of an artifact relative to the output directory.
func (r *Router) Route(a Artifact) string {
	if a.IsScript() {
		if id, ok := r.componentFromModule(a.FacadeModule); ok {
			return r.componentFile(id, "js")
		}

		if a.Kind == ArtifactChunk {
			name := strings.TrimPrefix(filepath.ToSlash(a.Name), "/")
			if strings.HasPrefix(name, VendorChunkPrefix) {
				return name + ".js"
			}
			if a.Hash == "" {
				return path.Join(ChunksDir, name+".js")
			}
			return path.Join(ChunksDir, name+"-"+a.Hash+".js")
		}

		return strings.TrimPrefix(filepath.ToSlash(a.Name), "/") + ".js"
	}

	fileName := a.FileName
	if fileName == "" {
		fileName = a.Name + "." + a.Ext
	}
	base := path.Base(filepath.ToSlash(fileName))
	ext := a.Ext
	if ext == "" {
		ext = strings.TrimPrefix(path.Ext(base), ".")
	}

	if id, ok := r.components.Match(base, r.match); ok {
		return r.componentFile(id, ext)
	}

	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, path.Ext(base)) + "." + ext
}

// EntryOutputPath is the extension-less destination of a declared entry
// source, handed to the bundler so entries are emitted in place.
func (r *Router) EntryOutputPath(source string) string {
	source = filepath.ToSlash(source)
	ext := strings.TrimPrefix(path.Ext(source), ".")
	name := strings.TrimSuffix(path.Base(source), path.Ext(source))

	var dest string
	switch ext {
	case "ts", "tsx", "js", "jsx", "mjs":
		dest = r.Route(Artifact{Kind: ArtifactEntry, Name: name, FacadeModule: source, Ext: "js"})
		return strings.TrimSuffix(dest, ".js")
	default:
		dest = r.Route(Artifact{Kind: ArtifactAsset, Name: name, FileName: path.Base(source), Ext: ext})
		return strings.TrimSuffix(dest, path.Ext(dest))
	}
}

func (r *Router) componentFromModule(module string) (string, bool) {
	if module == "" {
		return "", false
	}
	module = filepath.ToSlash(module)
	if !strings.HasPrefix(module, "/") {
		module = "/" + module
	}

	_, rest, found := strings.Cut(module, r.marker)
	if !found {
		return "", false
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return "", false
	}
	return id, true
}

func (r *Router) componentFile(id, ext string) string {
	return path.Join(r.componentsDir, id, id+"."+ext)
}

// IsComponentPath reports whether a routed destination lives in the
// component staging area.
func (r *Router) IsComponentPath(dest string) bool {
	return strings.HasPrefix(filepath.ToSlash(dest), r.componentsDir+"/")
}
