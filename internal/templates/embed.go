package templates

import (
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed all:theme
var themeFS embed.FS

//go:embed all:component
var componentFS embed.FS

const namePlaceholder = "__name__"

var ErrInvalidTemplate = errors.New("invalid template name")

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "theme":
		return fs.Sub(themeFS, "theme")
	case "component":
		return fs.Sub(componentFS, "component")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Name string
}

// ProcessFilename strips the .tmpl suffix, substitutes the name placeholder
// and restores dotfiles that cannot be embedded under their real name.
func ProcessFilename(filename string, data TemplateData) (string, bool) {
	filename = strings.ReplaceAll(filename, namePlaceholder, data.Name)
	if filepath.Base(filename) == "gitignore" {
		filename = filepath.Join(filepath.Dir(filename), ".gitignore")
	}
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.Name}}", data.Name)

	return []byte(result)
}

func DeriveThemeName(themeDir string) string {
	base := filepath.Base(themeDir)
	if base == "." || base == "/" || base == "" {
		return "theme"
	}
	return base
}
