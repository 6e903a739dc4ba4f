package usecase

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
	"github.com/3-lines-studio/prism/internal/discovery"
)

func TestInitTheme(t *testing.T) {
	themeDir := filepath.Join(t.TempDir(), "fresh")
	service := NewInitService(fs.NewOSFileSystem(), testOutput())

	out := service.InitTheme(InitInput{ThemeDir: themeDir})
	require.NoError(t, out.Error)
	assert.True(t, out.Success)

	for _, file := range []string{
		"prism.yaml",
		"package.json",
		"init.js",
		".gitignore",
		"src/main.ts",
		"src/main.css",
		"src/ckeditor.css",
		"components/.gitkeep",
		"assets/.gitkeep",
	} {
		assert.FileExists(t, filepath.Join(themeDir, file))
	}

	assert.Contains(t, readFile(t, themeDir, "package.json"), `"name": "fresh"`)
	assert.Contains(t, readFile(t, themeDir, "prism.yaml"), "fresh theme")
}

func TestInitTheme_NonEmptyDirectory(t *testing.T) {
	themeDir := t.TempDir()
	writeFile(t, themeDir, "existing.txt", "")

	out := NewInitService(fs.NewOSFileSystem(), testOutput()).InitTheme(InitInput{ThemeDir: themeDir})

	assert.False(t, out.Success)
	assert.ErrorContains(t, out.Error, "not empty")
}

func TestNewComponent(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	service := NewInitService(fs.NewOSFileSystem(), testOutput())

	out := service.NewComponent(cfg, ComponentInput{Name: "hero"})
	require.NoError(t, out.Error)

	assert.Contains(t, readFile(t, root, "components/hero/src/hero.ts"), `data-component="hero"`)
	assert.Contains(t, readFile(t, root, "components/hero/src/hero.css"), `data-component="hero"`)

	found, err := discovery.Scan(fs.NewOSFileSystem(), root, cfg.ComponentsDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"components/hero/src/hero.ts", "components/hero/src/hero.css"}, found.Entries)
}

func TestNewComponent_Rejects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "components/hero/src/hero.ts", "")
	service := NewInitService(fs.NewOSFileSystem(), testOutput())

	out := service.NewComponent(testConfig(root), ComponentInput{Name: "hero"})
	assert.ErrorContains(t, out.Error, "already exists")

	out = service.NewComponent(testConfig(root), ComponentInput{Name: "../escape"})
	assert.ErrorContains(t, out.Error, "invalid component name")
}
