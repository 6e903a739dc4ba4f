package core

import (
	"encoding/json"
	"path"
	"sort"
)

const ManifestFile = "manifest.json"

type ManifestEntry struct {
	File      string   `json:"file"`
	Name      string   `json:"name"`
	Src       string   `json:"src,omitempty"`
	IsEntry   bool     `json:"isEntry,omitempty"`
	CSS       []string `json:"css,omitempty"`
	Relocated bool     `json:"relocated,omitempty"`
}

type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
	Chunks  map[string]string        `json:"chunks,omitempty"`
	Assets  map[string]string        `json:"assets,omitempty"`
}

func NewManifest() *Manifest {
	return &Manifest{
		Entries: make(map[string]ManifestEntry),
		Chunks:  make(map[string]string),
		Assets:  make(map[string]string),
	}
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Add records a routed file under its logical key: the entry source for
// entries, the logical name for chunks and the emitted name for assets.
// A stylesheet emitted for a script entry is listed in that entry's css.
func (m *Manifest) Add(file EmittedFile, dest string) {
	a := file.Artifact
	switch {
	case file.Source != "":
		entry := m.Entries[file.Source]
		entry.Name = a.Name
		entry.Src = file.Source
		entry.IsEntry = true
		if a.IsScript() || !isScriptSource(file.Source) {
			entry.File = dest
		} else {
			entry.CSS = appendUnique(entry.CSS, dest)
		}
		m.Entries[file.Source] = entry
	case a.Kind == ArtifactChunk:
		m.Chunks[a.Name] = dest
	default:
		key := a.FileName
		if key == "" {
			key = a.Name + "." + a.Ext
		}
		m.Assets[key] = dest
	}
}

func (m *Manifest) LinkCSS(source, cssDest string) {
	entry, ok := m.Entries[source]
	if !ok || cssDest == "" {
		return
	}
	entry.CSS = appendUnique(entry.CSS, cssDest)
	m.Entries[source] = entry
}

// MarkRelocated flags every entry whose file passes the predicate.
func (m *Manifest) MarkRelocated(relocated func(file string) bool) {
	for key, entry := range m.Entries {
		if relocated(entry.File) {
			entry.Relocated = true
			m.Entries[key] = entry
		}
	}
}

func (m *Manifest) Sources() []string {
	sources := make([]string, 0, len(m.Entries))
	for source := range m.Entries {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}

func isScriptSource(source string) bool {
	switch path.Ext(source) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs":
		return true
	}
	return false
}
