package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/prism/internal/config"
	"github.com/3-lines-studio/prism/internal/core"
	"github.com/3-lines-studio/prism/internal/templates"
)

type InitInput struct {
	ThemeDir string
}

type InitOutput struct {
	Success bool
	Error   error
	Files   []string
}

type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

// InitTheme writes a theme skeleton into an empty or missing directory.
func (s *InitService) InitTheme(input InitInput) InitOutput {
	s.cli.PrintHeader("Prism Init")

	if s.fs.FileExists(input.ThemeDir) {
		entries, err := s.fs.ReadDir(input.ThemeDir)
		if err != nil {
			return InitOutput{Success: false, Error: fmt.Errorf("failed to read directory: %w", err)}
		}
		if len(entries) > 0 {
			return InitOutput{Success: false, Error: fmt.Errorf("directory '%s' already exists and is not empty", input.ThemeDir)}
		}
	}

	data := templates.TemplateData{Name: templates.DeriveThemeName(input.ThemeDir)}
	files, err := s.render("theme", input.ThemeDir, data)
	if err != nil {
		return InitOutput{Success: false, Error: err, Files: files}
	}

	s.cli.PrintSuccess("Created %d files", len(files))
	s.cli.PrintStep("", "Next steps:")
	s.cli.PrintFile("cd " + input.ThemeDir)
	s.cli.PrintFile("npm install")
	s.cli.PrintFile("prism build")
	return InitOutput{Success: true, Files: files}
}

type ComponentInput struct {
	Name string
}

// NewComponent scaffolds components/<name>/src/<name>.{ts,css}.
func (s *InitService) NewComponent(cfg config.Config, input ComponentInput) InitOutput {
	s.cli.PrintHeader("Prism Component")

	if err := core.ValidateComponentName(input.Name); err != nil {
		return InitOutput{Success: false, Error: fmt.Errorf("invalid component name '%s': %w", input.Name, err)}
	}

	dir := filepath.Join(cfg.ComponentsPath(), input.Name)
	if s.fs.FileExists(dir) {
		return InitOutput{Success: false, Error: fmt.Errorf("component '%s' already exists", input.Name)}
	}

	files, err := s.render("component", dir, templates.TemplateData{Name: input.Name})
	if err != nil {
		return InitOutput{Success: false, Error: err, Files: files}
	}

	s.cli.PrintSuccess("Component %s created", input.Name)
	return InitOutput{Success: true, Files: files}
}

func (s *InitService) render(templateName, targetDir string, data templates.TemplateData) ([]string, error) {
	templateFS, err := templates.GetTemplate(templateName)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			return nil, fmt.Errorf("invalid template '%s'", templateName)
		}
		return nil, err
	}

	if err := s.fs.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var created []string
	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			dir := filepath.Join(targetDir, path)
			if err := s.fs.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			return nil
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path, data)
		targetPath = filepath.Join(targetDir, targetPath)
		processed := templates.ProcessContent(content, isTemplate, data)

		if err := s.fs.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", targetPath, err)
		}
		if err := s.fs.WriteFile(targetPath, processed, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		created = append(created, targetPath)
		return nil
	})

	return created, err
}
