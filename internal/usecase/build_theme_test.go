package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/core"
)

func newThemeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "main")
	writeFile(t, root, "src/main.css", "body{}")
	writeFile(t, root, "components/button/src/button.ts", "button")
	writeFile(t, root, "components/button/src/button.css", ".btn{}")
	writeFile(t, root, "components/card/src/card.css", ".card{}")
	writeFile(t, root, "components/empty/README.md", "")
	writeFile(t, root, "assets/images/logo.svg", "<svg/>")
	writeFile(t, root, "node_modules/heroicons/24/solid/sun.svg", "<svg/>")
	return root
}

func TestBuildTheme_FullBuild(t *testing.T) {
	root := newThemeFixture(t)
	cfg := testConfig(root)
	cfg.Vendor = []string{"heroicons", "missing-pkg"}

	bundler := &fakeBundler{extra: []core.EmittedFile{
		{
			Path:     "chunks/chunk-AAAA.js",
			Contents: []byte("shared"),
			Artifact: core.Artifact{Kind: core.ArtifactChunk, Name: "chunk", Ext: "js", Hash: "AAAA"},
		},
	}}
	service := NewBuildService(cfg, bundler, fs.NewOSFileSystem(), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})
	require.NoError(t, out.Error)
	require.True(t, out.Success)

	sources := make([]string, 0, len(bundler.entries))
	for _, entry := range bundler.entries {
		sources = append(sources, entry.Source)
	}
	assert.Equal(t, []string{
		"src/main.ts",
		"src/main.css",
		"components/button/src/button.ts",
		"components/button/src/button.css",
		"components/card/src/card.css",
	}, sources, "missing src/ckeditor.css is skipped")

	assert.Equal(t, "// src/main.ts", readFile(t, root, "dist/main.js"))
	assert.Equal(t, "/* src/main.css */", readFile(t, root, "dist/main.css"))
	assert.Equal(t, "shared", readFile(t, root, "dist/chunks/chunk-AAAA.js"))

	assert.Equal(t, "// components/button/src/button.ts", readFile(t, root, "components/button/button.js"))
	assert.Equal(t, "/* components/button/src/button.css */", readFile(t, root, "components/button/button.css"))
	assert.Equal(t, "/* components/card/src/card.css */", readFile(t, root, "components/card/card.css"))
	assert.NoDirExists(t, filepath.Join(root, "dist", "components"))

	assert.Equal(t, "<svg/>", readFile(t, root, "dist/images/logo.svg"))
	assert.Equal(t, "<svg/>", readFile(t, root, "dist/vendor/heroicons/24/solid/sun.svg"))
	require.Len(t, out.Vendor, 2)
	assert.True(t, out.Vendor[1].Missing)

	manifest, err := core.ParseManifest([]byte(readFile(t, root, "dist/manifest.json")))
	require.NoError(t, err)
	button := manifest.Entries["components/button/src/button.ts"]
	assert.Equal(t, "components/button/button.js", button.File)
	assert.True(t, button.Relocated)
	assert.False(t, manifest.Entries["src/main.ts"].Relocated)
	assert.Equal(t, "chunks/chunk-AAAA.js", manifest.Chunks["chunk"])
}

func TestBuildTheme_VendorChunkImportsRewritten(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "main")
	cfg := testConfig(root)
	cfg.Entries = []string{"src/main.ts"}

	bundler := &fakeBundler{extra: []core.EmittedFile{
		{
			Path:     "chunks/chunk-BBBB.js",
			Contents: []byte(`export const t=1;`),
			Artifact: core.Artifact{Kind: core.ArtifactChunk, Name: "vendor/theme-change_index", Ext: "js", Hash: "BBBB"},
		},
		{
			Path:     "chunks/chunk-CCCC.js",
			Contents: []byte(`import{t}from"./chunk-BBBB.js";`),
			Artifact: core.Artifact{Kind: core.ArtifactChunk, Name: "chunk", Ext: "js", Hash: "CCCC"},
		},
	}}
	service := NewBuildService(cfg, bundler, fs.NewOSFileSystem(), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})
	require.NoError(t, out.Error)

	assert.Equal(t, `export const t=1;`, readFile(t, root, "dist/vendor/theme-change_index.js"))
	assert.Equal(t, `import{t}from"../vendor/theme-change_index.js";`, readFile(t, root, "dist/chunks/chunk-CCCC.js"))
}

func TestBuildTheme_BundlerErrors(t *testing.T) {
	root := newThemeFixture(t)
	bundler := &fakeBundler{errors: []string{`src/main.ts:1:7: Could not resolve "x"`}}
	service := NewBuildService(testConfig(root), bundler, fs.NewOSFileSystem(), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})

	assert.False(t, out.Success)
	assert.ErrorContains(t, out.Error, "bundling failed")
	assert.NoFileExists(t, filepath.Join(root, "dist", "manifest.json"))
}

func TestBuildTheme_NoEntries(t *testing.T) {
	service := NewBuildService(testConfig(t.TempDir()), &fakeBundler{}, fs.NewOSFileSystem(), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})

	assert.False(t, out.Success)
	assert.ErrorContains(t, out.Error, "no entry points")
}

func TestBuildTheme_PartialRelocationIsNotFatal(t *testing.T) {
	root := newThemeFixture(t)
	service := NewBuildService(testConfig(root), &fakeBundler{}, newFailingFS("button.css"), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})

	require.True(t, out.Success)
	failed := core.FailedMoves(out.Relocation.Results)
	require.Len(t, failed, 1)
	assert.Equal(t, "button.css", failed[0].Move.File)
	assert.FileExists(t, filepath.Join(root, "components", "button", "button.js"))
	assert.FileExists(t, filepath.Join(root, "components", "card", "card.css"))
}

func TestBuildTheme_NestedComponentsDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "main")
	writeFile(t, root, "web/components/button/src/button.ts", "button")
	writeFile(t, root, "web/components/button/src/button.css", ".btn{}")

	cfg := testConfig(root)
	cfg.ComponentsDir = "web/components"
	require.NoError(t, cfg.Validate())

	out := NewBuildService(cfg, &fakeBundler{}, fs.NewOSFileSystem(), testOutput()).
		BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})
	require.NoError(t, out.Error)

	assert.True(t, out.Relocation.Staged)
	assert.Equal(t, 2, out.Relocation.Moved())
	assert.Equal(t, "// web/components/button/src/button.ts", readFile(t, root, "web/components/button/button.js"))
	assert.FileExists(t, filepath.Join(root, "web", "components", "button", "button.css"))
	assert.NoDirExists(t, filepath.Join(root, "dist", "web", "components"))

	manifest, err := core.ParseManifest([]byte(readFile(t, root, "dist/manifest.json")))
	require.NoError(t, err)
	button := manifest.Entries["web/components/button/src/button.ts"]
	assert.Equal(t, "web/components/button/button.js", button.File)
	assert.True(t, button.Relocated)
}

func TestBuildTheme_FailedMoveIsNotMarkedRelocated(t *testing.T) {
	root := newThemeFixture(t)
	service := NewBuildService(testConfig(root), &fakeBundler{}, newFailingFS("button.js"), testOutput())

	out := service.BuildTheme(context.Background(), BuildInput{Mode: core.ModeFull})
	require.True(t, out.Success)

	manifest, err := core.ParseManifest([]byte(readFile(t, root, "dist/manifest.json")))
	require.NoError(t, err)
	assert.False(t, manifest.Entries["components/button/src/button.ts"].Relocated)
	assert.True(t, manifest.Entries["components/card/src/card.css"].Relocated)
}

func TestWatchTheme_NeverRelocates(t *testing.T) {
	root := newThemeFixture(t)
	bundler := &fakeBundler{rebuild: 2}
	service := NewBuildService(testConfig(root), bundler, fs.NewOSFileSystem(), testOutput())

	require.NoError(t, service.WatchTheme(context.Background()))

	assert.FileExists(t, filepath.Join(root, "dist", "components", "button", "button.js"))
	assert.FileExists(t, filepath.Join(root, "dist", "components", "card", "card.css"))
	assert.NoFileExists(t, filepath.Join(root, "components", "button", "button.js"))

	manifest, err := core.ParseManifest([]byte(readFile(t, root, "dist/manifest.json")))
	require.NoError(t, err)
	assert.False(t, manifest.Entries["components/button/src/button.ts"].Relocated)
}
