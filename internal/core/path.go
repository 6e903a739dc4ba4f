package core

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var componentNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func ValidateComponentName(name string) error {
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("component name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("component name cannot contain parent directory references")
	}

	if !componentNamePattern.MatchString(name) {
		return fmt.Errorf("component name must be lowercase letters, digits, '-' or '_'")
	}

	return nil
}

// BasePath derives the public base path of a theme from its location,
// "/var/www/web/themes/custom/fresh" becoming "/themes/custom/fresh/".
func BasePath(themeDir string) string {
	dir := filepath.ToSlash(themeDir)
	i := strings.Index(dir, "/themes/")
	if i < 0 {
		return "/"
	}
	rel := strings.Trim(dir[i:], "/")
	return "/" + rel + "/"
}

// PublicPath is the URL prefix under which the output directory is served.
func PublicPath(basePath, outDir string) string {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath + strings.Trim(filepath.ToSlash(outDir), "/")
}

// RelSlash returns target relative to base with forward slashes.
func RelSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
